package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

// EventNewNotification is pushed to the receiver when a notification is created
const EventNewNotification = "newNotification"

// Emitter pushes realtime events to a user's live connection
type Emitter interface {
	Emit(userID string, event string, data any) bool
}

// UserDirectory resolves public user cards
type UserDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]user.Summary, error)
}

// Input describes a notification to create
type Input struct {
	ReceiverID    string
	Type          Type
	RelatedUserID string
	RelatedPostID string
}

// View is a notification with its related user resolved
type View struct {
	*Notification
	RelatedUser *user.Summary `json:"relatedUser"`
}

// Service creates, lists and deletes notifications
type Service struct {
	store   Store
	users   UserDirectory
	emitter Emitter
	logger  *zap.Logger
	metrics *monitoring.Metrics
	now     func() time.Time
}

// NewService creates a notification service
func NewService(store Store, users UserDirectory, emitter Emitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		users:   users,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
	}
}

// WithMetrics adds metrics tracking to the service
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// Notify stores a notification and pushes it to the receiver if online.
// Notifying a user about their own action is a no-op that returns nil.
func (s *Service) Notify(ctx context.Context, in Input) (*Notification, error) {
	if in.ReceiverID == "" || in.Type == "" {
		return nil, fmt.Errorf("%w: receiver and type are required", errs.ErrInvalidInput)
	}
	if in.ReceiverID == in.RelatedUserID {
		return nil, nil
	}

	n := &Notification{
		ReceiverID:    in.ReceiverID,
		Type:          in.Type,
		RelatedUserID: in.RelatedUserID,
		RelatedPostID: in.RelatedPostID,
		CreatedAt:     s.now(),
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordNotification(string(n.Type))
	}

	if s.emitter != nil {
		view := View{Notification: n}
		if cards, err := s.users.Summaries(ctx, []string{n.RelatedUserID}); err == nil {
			if card, ok := cards[n.RelatedUserID]; ok {
				view.RelatedUser = &card
			}
		}
		delivered := s.emitter.Emit(n.ReceiverID, EventNewNotification, view)
		s.logger.Debug("Notification created",
			zap.String("receiver", n.ReceiverID),
			zap.String("type", string(n.Type)),
			zap.Bool("pushed", delivered),
		)
	}
	return n, nil
}

// List returns a user's notifications, newest first
func (s *Service) List(ctx context.Context, receiverID string) ([]View, error) {
	items, err := s.store.ListFor(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.RelatedUserID)
	}
	cards, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(items))
	for _, n := range items {
		v := View{Notification: n}
		if card, ok := cards[n.RelatedUserID]; ok {
			v.RelatedUser = &card
		}
		views = append(views, v)
	}
	return views, nil
}

// Delete removes one of the caller's notifications
func (s *Service) Delete(ctx context.Context, receiverID, id string) error {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.ReceiverID != receiverID {
		return fmt.Errorf("%w: notification belongs to another user", errs.ErrForbidden)
	}
	return s.store.Delete(ctx, id)
}

// Clear removes all of the caller's notifications
func (s *Service) Clear(ctx context.Context, receiverID string) (int64, error) {
	return s.store.DeleteAllFor(ctx, receiverID)
}
