package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/connection"
)

type requestDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SenderID   string             `bson:"sender"`
	ReceiverID string             `bson:"receiver"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d requestDoc) toRequest() *connection.Request {
	return &connection.Request{
		ID:         d.ID.Hex(),
		SenderID:   d.SenderID,
		ReceiverID: d.ReceiverID,
		Status:     connection.Status(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ConnectionStore stores connection requests in the connections collection
type ConnectionStore struct {
	coll *mongo.Collection
}

func (s *ConnectionStore) Create(ctx context.Context, r *connection.Request) error {
	d := requestDoc{
		ID:         primitive.NewObjectID(),
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return mapErr(err, "connection request")
	}
	r.ID = d.ID.Hex()
	return nil
}

func (s *ConnectionStore) Get(ctx context.Context, id string) (*connection.Request, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *ConnectionStore) FindPending(ctx context.Context, senderID, receiverID string) (*connection.Request, error) {
	return s.findOne(ctx, bson.M{
		"sender":   senderID,
		"receiver": receiverID,
		"status":   string(connection.StatusPending),
	})
}

func (s *ConnectionStore) UpdateStatus(ctx context.Context, id string, status connection.Status) (*connection.Request, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var d requestDoc
	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now()}}
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, returnAfter()).Decode(&d); err != nil {
		return nil, mapErr(err, "connection request")
	}
	return d.toRequest(), nil
}

func (s *ConnectionStore) DeleteBetween(ctx context.Context, a, b string) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"sender": a, "receiver": b},
		bson.M{"sender": b, "receiver": a},
	}})
	return mapErr(err, "connection requests")
}

func (s *ConnectionStore) ListPendingFor(ctx context.Context, receiverID string) ([]*connection.Request, error) {
	filter := bson.M{"receiver": receiverID, "status": string(connection.StatusPending)}
	cur, err := s.coll.Find(ctx, filter, findOptions(0))
	if err != nil {
		return nil, mapErr(err, "connection requests")
	}
	docs, err := decodeAll[requestDoc](ctx, cur)
	if err != nil {
		return nil, mapErr(err, "connection requests")
	}

	out := make([]*connection.Request, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRequest())
	}
	return out, nil
}

func (s *ConnectionStore) findOne(ctx context.Context, filter bson.M) (*connection.Request, error) {
	var d requestDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapErr(err, "connection request")
	}
	return d.toRequest(), nil
}
