package connection

import (
	"context"
	"time"
)

// Status of a connection request
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Relation describes how the caller relates to another member
type Relation string

const (
	// RelationNone means no link and no open request
	RelationNone Relation = "connect"
	// RelationPending means the caller sent a request that is still open
	RelationPending Relation = "pending"
	// RelationReceived means the other member sent the caller a request
	RelationReceived Relation = "received"
	// RelationConnected means both members are linked
	RelationConnected Relation = "disconnect"
)

// Request is a connection request between two members
type Request struct {
	ID         string    `json:"_id"`
	SenderID   string    `json:"sender"`
	ReceiverID string    `json:"receiver"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Store persists connection requests. Implementations return
// errs.ErrNotFound for missing requests.
type Store interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	// FindPending returns the open request from sender to receiver
	FindPending(ctx context.Context, senderID, receiverID string) (*Request, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Request, error)
	// DeleteBetween removes every request between a and b in either direction
	DeleteBetween(ctx context.Context, a, b string) error
	ListPendingFor(ctx context.Context, receiverID string) ([]*Request, error)
}
