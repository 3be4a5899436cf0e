package notification

import (
	"context"
	"time"
)

// Type classifies a notification
type Type string

const (
	TypeLike               Type = "like"
	TypeComment            Type = "comment"
	TypeConnectionAccepted Type = "connectionAccepted"
)

// Notification tells a user something happened that involves them
type Notification struct {
	ID            string    `json:"_id"`
	ReceiverID    string    `json:"receiver"`
	Type          Type      `json:"type"`
	RelatedUserID string    `json:"relatedUser"`
	RelatedPostID string    `json:"relatedPost,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Store persists notifications. Implementations return errs.ErrNotFound
// for missing notifications. ListFor returns newest first.
type Store interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id string) (*Notification, error)
	ListFor(ctx context.Context, receiverID string) ([]*Notification, error)
	Delete(ctx context.Context, id string) error
	DeleteAllFor(ctx context.Context, receiverID string) (int64, error)
}
