package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

const (
	usersCollection         = "users"
	postsCollection         = "posts"
	connectionsCollection   = "connections"
	notificationsCollection = "notifications"
)

// Stores groups the MongoDB implementations of every domain store
type Stores struct {
	Users         *UserStore
	Posts         *PostStore
	Connections   *ConnectionStore
	Notifications *NotificationStore
}

// New creates the stores on db and ensures their indexes
func New(ctx context.Context, db *mongo.Database) (*Stores, error) {
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return &Stores{
		Users:         &UserStore{coll: db.Collection(usersCollection)},
		Posts:         &PostStore{coll: db.Collection(postsCollection)},
		Connections:   &ConnectionStore{coll: db.Collection(connectionsCollection)},
		Notifications: &NotificationStore{coll: db.Collection(notificationsCollection)},
	}, nil
}

// EnsureIndexes creates the unique and lookup indexes the stores rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userName", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		postsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		connectionsCollection: {
			{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "receiver", Value: 1}, {Key: "status", Value: 1}}},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "receiver", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, errs.ErrNotFound)
	}
	return oid, nil
}

// objectIDs converts ids, dropping malformed ones
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func mapErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", what, errs.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s already exists", errs.ErrConflict, what)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func findOptions(limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	defer cur.Close(ctx)

	var docs []T
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
