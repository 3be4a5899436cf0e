package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/notification"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

type notificationDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ReceiverID    string             `bson:"receiver"`
	Type          string             `bson:"type"`
	RelatedUserID string             `bson:"relatedUser"`
	RelatedPostID string             `bson:"relatedPost,omitempty"`
	Read          bool               `bson:"read"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (d notificationDoc) toNotification() *notification.Notification {
	return &notification.Notification{
		ID:            d.ID.Hex(),
		ReceiverID:    d.ReceiverID,
		Type:          notification.Type(d.Type),
		RelatedUserID: d.RelatedUserID,
		RelatedPostID: d.RelatedPostID,
		Read:          d.Read,
		CreatedAt:     d.CreatedAt,
	}
}

// NotificationStore stores notifications in the notifications collection
type NotificationStore struct {
	coll *mongo.Collection
}

func (s *NotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	d := notificationDoc{
		ID:            primitive.NewObjectID(),
		ReceiverID:    n.ReceiverID,
		Type:          string(n.Type),
		RelatedUserID: n.RelatedUserID,
		RelatedPostID: n.RelatedPostID,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return mapErr(err, "notification")
	}
	n.ID = d.ID.Hex()
	return nil
}

func (s *NotificationStore) Get(ctx context.Context, id string) (*notification.Notification, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var d notificationDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mapErr(err, "notification")
	}
	return d.toNotification(), nil
}

func (s *NotificationStore) ListFor(ctx context.Context, receiverID string) ([]*notification.Notification, error) {
	cur, err := s.coll.Find(ctx, bson.M{"receiver": receiverID}, findOptions(0))
	if err != nil {
		return nil, mapErr(err, "notifications")
	}
	docs, err := decodeAll[notificationDoc](ctx, cur)
	if err != nil {
		return nil, mapErr(err, "notifications")
	}

	out := make([]*notification.Notification, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toNotification())
	}
	return out, nil
}

func (s *NotificationStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err, "notification")
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *NotificationStore) DeleteAllFor(ctx context.Context, receiverID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"receiver": receiverID})
	if err != nil {
		return 0, mapErr(err, "notifications")
	}
	return res.DeletedCount, nil
}
