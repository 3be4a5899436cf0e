package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/auth"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

const (
	searchLimit    = 20
	suggestedLimit = 10
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", errs.ErrInvalidInput)

var validate = validator.New()

// SignupInput is the data needed to create an account
type SignupInput struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	UserName  string `json:"userName" validate:"required,min=3,max=30,alphanum"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName    *string      `json:"firstName" validate:"omitempty,max=50"`
	LastName     *string      `json:"lastName" validate:"omitempty,max=50"`
	UserName     *string      `json:"userName" validate:"omitempty,min=3,max=30,alphanum"`
	Headline     *string      `json:"headline" validate:"omitempty,max=220"`
	Location     *string      `json:"location" validate:"omitempty,max=100"`
	Gender       *string      `json:"gender" validate:"omitempty,oneof=male female other"`
	Skills       []string     `json:"skills" validate:"omitempty,max=50,dive,max=50"`
	Education    []Education  `json:"education" validate:"omitempty,max=20"`
	Experience   []Experience `json:"experience" validate:"omitempty,max=20"`
	ProfileImage string       `json:"-"`
	CoverImage   string       `json:"-"`
}

// Service implements account and profile operations
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a user service
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Signup creates an account
func (s *Service) Signup(ctx context.Context, in SignupInput) (*User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.UserName = strings.TrimSpace(in.UserName)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	}

	if _, err := s.store.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", errs.ErrConflict)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.GetByUserName(ctx, in.UserName); err == nil {
		return nil, fmt.Errorf("%w: userName already exists", errs.ErrConflict)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		UserName:     in.UserName,
		Email:        in.Email,
		PasswordHash: hash,
		Skills:       []string{},
		Education:    []Education{},
		Experience:   []Experience{},
		Connections:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Login checks credentials and returns the account
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, errs.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}

// Get returns a user by ID
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.Get(ctx, id)
}

// GetByUserName returns a user by user name
func (s *Service) GetByUserName(ctx context.Context, userName string) (*User, error) {
	return s.store.GetByUserName(ctx, userName)
}

// UpdateProfile applies a profile update to a user
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error) {
	if err := validate.Struct(upd); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	}

	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.UserName != nil && *upd.UserName != u.UserName {
		if _, err := s.store.GetByUserName(ctx, *upd.UserName); err == nil {
			return nil, fmt.Errorf("%w: userName already exists", errs.ErrConflict)
		} else if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		u.UserName = *upd.UserName
	}

	setIf(&u.FirstName, upd.FirstName)
	setIf(&u.LastName, upd.LastName)
	setIf(&u.Headline, upd.Headline)
	setIf(&u.Location, upd.Location)
	setIf(&u.Gender, upd.Gender)
	if upd.Skills != nil {
		u.Skills = lo.Uniq(lo.Filter(lo.Map(upd.Skills, func(s string, _ int) string {
			return strings.TrimSpace(s)
		}), func(s string, _ int) bool { return s != "" }))
	}
	if upd.Education != nil {
		u.Education = upd.Education
	}
	if upd.Experience != nil {
		u.Experience = upd.Experience
	}
	if upd.ProfileImage != "" {
		u.ProfileImage = upd.ProfileImage
	}
	if upd.CoverImage != "" {
		u.CoverImage = upd.CoverImage
	}
	u.UpdatedAt = s.now()

	if err := s.store.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// Search finds users by name, user name or skill
func (s *Service) Search(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", errs.ErrInvalidInput)
	}

	users, err := s.store.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

// Suggested returns users the caller is not yet connected to
func (s *Service) Suggested(ctx context.Context, id string) ([]Summary, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exclude := append([]string{u.ID}, u.Connections...)
	users, err := s.store.ListExcluding(ctx, exclude, suggestedLimit)
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

// Summaries resolves public cards for a set of user IDs. Unknown IDs are skipped.
func (s *Service) Summaries(ctx context.Context, ids []string) (map[string]Summary, error) {
	users, err := s.store.GetMany(ctx, lo.Uniq(ids))
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(users, func(u *User) (string, Summary) {
		return u.ID, u.Summary()
	}), nil
}

// Connect links two users in both directions
func (s *Service) Connect(ctx context.Context, a, b string) error {
	return s.store.AddConnection(ctx, a, b)
}

// Disconnect unlinks two users in both directions
func (s *Service) Disconnect(ctx context.Context, a, b string) error {
	return s.store.RemoveConnection(ctx, a, b)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func summaries(users []*User) []Summary {
	return lo.Map(users, func(u *User, _ int) Summary { return u.Summary() })
}
