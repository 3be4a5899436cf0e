package connection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/notification"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

// EventStatusUpdate is pushed to both members when a request changes
const EventStatusUpdate = "statusUpdate"

// Users is the part of the user service the connection flow needs
type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
	Summaries(ctx context.Context, ids []string) (map[string]user.Summary, error)
	Connect(ctx context.Context, a, b string) error
	Disconnect(ctx context.Context, a, b string) error
}

// Notifier creates notifications for other users
type Notifier interface {
	Notify(ctx context.Context, in notification.Input) (*notification.Notification, error)
}

// Emitter pushes realtime events to a user's live connection
type Emitter interface {
	Emit(userID string, event string, data any) bool
}

// StatusChange is the payload of a statusUpdate event
type StatusChange struct {
	RequestID string `json:"connectionId,omitempty"`
	UserID    string `json:"userId"`
	Status    Status `json:"status"`
}

// RequestView is a pending request with its sender resolved
type RequestView struct {
	*Request
	Sender *user.Summary `json:"sender"`
}

// Service implements connection requests between members
type Service struct {
	store    Store
	users    Users
	notifier Notifier
	emitter  Emitter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a connection service
func NewService(store Store, users Users, notifier Notifier, emitter Emitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		users:    users,
		notifier: notifier,
		emitter:  emitter,
		logger:   logger,
		now:      time.Now,
	}
}

// Send opens a request from sender to receiver
func (s *Service) Send(ctx context.Context, senderID, receiverID string) (*Request, error) {
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot connect to yourself", errs.ErrConflict)
	}

	sender, err := s.users.Get(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, receiverID); err != nil {
		return nil, err
	}
	if sender.IsConnectedTo(receiverID) {
		return nil, fmt.Errorf("%w: already connected", errs.ErrConflict)
	}

	for _, pair := range [][2]string{{senderID, receiverID}, {receiverID, senderID}} {
		if _, err := s.store.FindPending(ctx, pair[0], pair[1]); err == nil {
			return nil, fmt.Errorf("%w: request already pending", errs.ErrConflict)
		} else if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	now := s.now()
	r := &Request{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create connection request: %w", err)
	}

	s.emitter.Emit(receiverID, EventStatusUpdate, StatusChange{RequestID: r.ID, UserID: senderID, Status: StatusPending})
	return r, nil
}

// Accept links the two members of a pending request. Only the receiver may accept.
func (s *Service) Accept(ctx context.Context, userID, requestID string) (*Request, error) {
	r, err := s.pendingFor(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Connect(ctx, r.SenderID, r.ReceiverID); err != nil {
		return nil, fmt.Errorf("failed to link users: %w", err)
	}
	r, err = s.store.UpdateStatus(ctx, r.ID, StatusAccepted)
	if err != nil {
		return nil, err
	}

	if _, err := s.notifier.Notify(ctx, notification.Input{
		ReceiverID:    r.SenderID,
		Type:          notification.TypeConnectionAccepted,
		RelatedUserID: r.ReceiverID,
	}); err != nil {
		s.logger.Warn("Failed to create notification", zap.String("request", r.ID), zap.Error(err))
	}

	s.emitter.Emit(r.SenderID, EventStatusUpdate, StatusChange{RequestID: r.ID, UserID: r.ReceiverID, Status: StatusAccepted})
	s.emitter.Emit(r.ReceiverID, EventStatusUpdate, StatusChange{RequestID: r.ID, UserID: r.SenderID, Status: StatusAccepted})
	return r, nil
}

// Reject declines a pending request. Only the receiver may reject.
func (s *Service) Reject(ctx context.Context, userID, requestID string) (*Request, error) {
	r, err := s.pendingFor(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	r, err = s.store.UpdateStatus(ctx, r.ID, StatusRejected)
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(r.SenderID, EventStatusUpdate, StatusChange{RequestID: r.ID, UserID: r.ReceiverID, Status: StatusRejected})
	return r, nil
}

// Status reports how userID relates to otherID
func (s *Service) Status(ctx context.Context, userID, otherID string) (Relation, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if u.IsConnectedTo(otherID) {
		return RelationConnected, nil
	}

	if _, err := s.store.FindPending(ctx, userID, otherID); err == nil {
		return RelationPending, nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return "", err
	}
	if _, err := s.store.FindPending(ctx, otherID, userID); err == nil {
		return RelationReceived, nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return "", err
	}
	return RelationNone, nil
}

// Remove unlinks two connected members
func (s *Service) Remove(ctx context.Context, userID, otherID string) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !u.IsConnectedTo(otherID) {
		return fmt.Errorf("%w: not connected", errs.ErrNotFound)
	}

	if err := s.users.Disconnect(ctx, userID, otherID); err != nil {
		return fmt.Errorf("failed to unlink users: %w", err)
	}
	if err := s.store.DeleteBetween(ctx, userID, otherID); err != nil {
		return err
	}

	s.emitter.Emit(otherID, EventStatusUpdate, StatusChange{UserID: userID, Status: Status(RelationNone)})
	return nil
}

// Requests lists the pending requests a user has received
func (s *Service) Requests(ctx context.Context, userID string) ([]RequestView, error) {
	items, err := s.store.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards, err := s.users.Summaries(ctx, lo.Map(items, func(r *Request, _ int) string { return r.SenderID }))
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(r *Request, _ int) RequestView {
		v := RequestView{Request: r}
		if card, ok := cards[r.SenderID]; ok {
			v.Sender = &card
		}
		return v
	}), nil
}

// Connections lists a user's accepted connections
func (s *Service) Connections(ctx context.Context, userID string) ([]user.Summary, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards, err := s.users.Summaries(ctx, u.Connections)
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(u.Connections, func(id string, _ int) (user.Summary, bool) {
		card, ok := cards[id]
		return card, ok
	}), nil
}

func (s *Service) pendingFor(ctx context.Context, userID, requestID string) (*Request, error) {
	r, err := s.store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.ReceiverID != userID {
		return nil, fmt.Errorf("%w: request was sent to another user", errs.ErrForbidden)
	}
	if r.Status != StatusPending {
		return nil, fmt.Errorf("%w: request is already %s", errs.ErrConflict, r.Status)
	}
	return r, nil
}
