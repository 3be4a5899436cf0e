package user

import (
	"context"
	"time"
)

// User is a member profile
type User struct {
	ID           string       `json:"_id"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	UserName     string       `json:"userName"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	ProfileImage string       `json:"profileImage"`
	CoverImage   string       `json:"coverImage"`
	Headline     string       `json:"headline"`
	Location     string       `json:"location"`
	Gender       string       `json:"gender,omitempty"`
	Skills       []string     `json:"skills"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Connections  []string     `json:"connection"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Education is one education entry of a profile
type Education struct {
	College      string `json:"college"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
}

// Experience is one work experience entry of a profile
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Summary is the public card shown next to posts, comments and requests
type Summary struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	UserName     string `json:"userName"`
	ProfileImage string `json:"profileImage"`
	Headline     string `json:"headline"`
}

// Summary returns the public card of a user
func (u *User) Summary() Summary {
	return Summary{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		UserName:     u.UserName,
		ProfileImage: u.ProfileImage,
		Headline:     u.Headline,
	}
}

// IsConnectedTo reports whether other is in the user's connections
func (u *User) IsConnectedTo(other string) bool {
	for _, id := range u.Connections {
		if id == other {
			return true
		}
	}
	return false
}

// Store persists users. Implementations return errs.ErrNotFound for
// missing users and errs.ErrConflict for duplicate email or user name.
type Store interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetMany(ctx context.Context, ids []string) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserName(ctx context.Context, userName string) (*User, error)
	Update(ctx context.Context, u *User) error
	Search(ctx context.Context, query string, limit int) ([]*User, error)
	ListExcluding(ctx context.Context, exclude []string, limit int) ([]*User, error)
	AddConnection(ctx context.Context, a, b string) error
	RemoveConnection(ctx context.Context, a, b string) error
}
