package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

// UserStore keeps users in memory
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewUserStore creates an empty user store
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*user.User)}
}

func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(u, ""); err != nil {
		return err
	}
	u.ID = uuid.NewString()
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, errs.ErrNotFound)
	}
	return cloneUser(u), nil
}

func (s *UserStore) GetMany(ctx context.Context, ids []string) ([]*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.find(func(u *user.User) bool { return u.Email == email })
}

func (s *UserStore) GetByUserName(ctx context.Context, userName string) (*user.User, error) {
	return s.find(func(u *user.User) bool { return u.UserName == userName })
}

func (s *UserStore) Update(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, errs.ErrNotFound)
	}
	if err := s.checkUnique(u, u.ID); err != nil {
		return err
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *UserStore) Search(ctx context.Context, query string, limit int) ([]*user.User, error) {
	q := strings.ToLower(query)
	match := func(u *user.User) bool {
		fields := append([]string{u.FirstName, u.LastName, u.UserName}, u.Skills...)
		return lo.SomeBy(fields, func(f string) bool {
			return strings.Contains(strings.ToLower(f), q)
		})
	}
	return s.list(match, limit), nil
}

func (s *UserStore) ListExcluding(ctx context.Context, exclude []string, limit int) ([]*user.User, error) {
	return s.list(func(u *user.User) bool { return !lo.Contains(exclude, u.ID) }, limit), nil
}

func (s *UserStore) AddConnection(ctx context.Context, a, b string) error {
	return s.link(a, b, func(list []string, id string) []string {
		if lo.Contains(list, id) {
			return list
		}
		return append(list, id)
	})
}

func (s *UserStore) RemoveConnection(ctx context.Context, a, b string) error {
	return s.link(a, b, func(list []string, id string) []string {
		return lo.Without(list, id)
	})
}

func (s *UserStore) link(a, b string, apply func([]string, string) []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ua, ok := s.users[a]
	if !ok {
		return fmt.Errorf("user %s: %w", a, errs.ErrNotFound)
	}
	ub, ok := s.users[b]
	if !ok {
		return fmt.Errorf("user %s: %w", b, errs.ErrNotFound)
	}
	ua.Connections = apply(ua.Connections, b)
	ub.Connections = apply(ub.Connections, a)
	return nil
}

func (s *UserStore) find(match func(*user.User) bool) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, errs.ErrNotFound
}

// list returns matching users newest first
func (s *UserStore) list(match func(*user.User) bool, limit int) []*user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*user.User
	for _, u := range s.users {
		if match(u) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *UserStore) checkUnique(u *user.User, self string) error {
	for id, existing := range s.users {
		if id == self {
			continue
		}
		if existing.Email == u.Email {
			return fmt.Errorf("%w: email already exists", errs.ErrConflict)
		}
		if existing.UserName == u.UserName {
			return fmt.Errorf("%w: userName already exists", errs.ErrConflict)
		}
	}
	return nil
}

func cloneUser(u *user.User) *user.User {
	c := *u
	c.Skills = append([]string(nil), u.Skills...)
	c.Education = append([]user.Education(nil), u.Education...)
	c.Experience = append([]user.Experience(nil), u.Experience...)
	c.Connections = append([]string(nil), u.Connections...)
	return &c
}
