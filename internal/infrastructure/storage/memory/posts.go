package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/post"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

// PostStore keeps posts in memory
type PostStore struct {
	mu    sync.RWMutex
	posts map[string]*post.Post
}

// NewPostStore creates an empty post store
func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[string]*post.Post)}
}

func (s *PostStore) Create(ctx context.Context, p *post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	s.posts[p.ID] = clonePost(p)
	return nil
}

func (s *PostStore) Get(ctx context.Context, id string) (*post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, errs.ErrNotFound)
	}
	return clonePost(p), nil
}

func (s *PostStore) List(ctx context.Context, limit int) ([]*post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*post.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *PostStore) ToggleLike(ctx context.Context, postID, userID string) (*post.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, false, fmt.Errorf("post %s: %w", postID, errs.ErrNotFound)
	}

	liked := !lo.Contains(p.Likes, userID)
	if liked {
		p.Likes = append(p.Likes, userID)
	} else {
		p.Likes = lo.Without(p.Likes, userID)
	}
	return clonePost(p), liked, nil
}

func (s *PostStore) AddComment(ctx context.Context, postID string, c post.Comment) (*post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", postID, errs.ErrNotFound)
	}
	p.Comments = append(p.Comments, c)
	return clonePost(p), nil
}

func clonePost(p *post.Post) *post.Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	c.Comments = append([]post.Comment{}, p.Comments...)
	return &c
}
