package post

import (
	"context"
	"time"
)

// Comment is a reply on a post
type Comment struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a feed entry
type Post struct {
	ID          string    `json:"_id"`
	AuthorID    string    `json:"author"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Likes       []string  `json:"like"`
	Comments    []Comment `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LikedBy reports whether a user likes the post
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Store persists posts. Implementations return errs.ErrNotFound for
// missing posts. List returns newest first.
type Store interface {
	Create(ctx context.Context, p *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, limit int) ([]*Post, error)
	// ToggleLike adds or removes userID from the post's likes and returns
	// the updated post and whether the user now likes it.
	ToggleLike(ctx context.Context, postID, userID string) (*Post, bool, error)
	AddComment(ctx context.Context, postID string, c Comment) (*Post, error)
}
