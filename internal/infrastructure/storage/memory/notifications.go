package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/notification"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

// NotificationStore keeps notifications in memory
type NotificationStore struct {
	mu    sync.RWMutex
	items map[string]*notification.Notification
}

// NewNotificationStore creates an empty notification store
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{items: make(map[string]*notification.Notification)}
}

func (s *NotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.NewString()
	c := *n
	s.items[n.ID] = &c
	return nil
}

func (s *NotificationStore) Get(ctx context.Context, id string) (*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", id, errs.ErrNotFound)
	}
	c := *n
	return &c, nil
}

func (s *NotificationStore) ListFor(ctx context.Context, receiverID string) ([]*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*notification.Notification
	for _, n := range s.items {
		if n.ReceiverID == receiverID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *NotificationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("notification %s: %w", id, errs.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

func (s *NotificationStore) DeleteAllFor(ctx context.Context, receiverID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, item := range s.items {
		if item.ReceiverID == receiverID {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}
