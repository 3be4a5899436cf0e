package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/connection"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

// ConnectionStore keeps connection requests in memory
type ConnectionStore struct {
	mu       sync.RWMutex
	requests map[string]*connection.Request
}

// NewConnectionStore creates an empty connection store
func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{requests: make(map[string]*connection.Request)}
}

func (s *ConnectionStore) Create(ctx context.Context, r *connection.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.NewString()
	c := *r
	s.requests[r.ID] = &c
	return nil
}

func (s *ConnectionStore) Get(ctx context.Context, id string) (*connection.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("connection request %s: %w", id, errs.ErrNotFound)
	}
	c := *r
	return &c, nil
}

func (s *ConnectionStore) FindPending(ctx context.Context, senderID, receiverID string) (*connection.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID && r.Status == connection.StatusPending {
			c := *r
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *ConnectionStore) UpdateStatus(ctx context.Context, id string, status connection.Status) (*connection.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("connection request %s: %w", id, errs.ErrNotFound)
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	c := *r
	return &c, nil
}

func (s *ConnectionStore) DeleteBetween(ctx context.Context, a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.requests {
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			delete(s.requests, id)
		}
	}
	return nil
}

func (s *ConnectionStore) ListPendingFor(ctx context.Context, receiverID string) ([]*connection.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*connection.Request
	for _, r := range s.requests {
		if r.ReceiverID == receiverID && r.Status == connection.StatusPending {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
