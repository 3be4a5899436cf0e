package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/notification"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

const (
	feedLimit         = 100
	maxDescriptionLen = 3000
	maxCommentLen     = 1000

	EventLikeUpdated  = "likeUpdated"
	EventCommentAdded = "commentAdded"
)

// Notifier creates notifications for other users
type Notifier interface {
	Notify(ctx context.Context, in notification.Input) (*notification.Notification, error)
}

// Emitter pushes realtime events to a user's live connection
type Emitter interface {
	Emit(userID string, event string, data any) bool
}

// UserDirectory resolves public user cards
type UserDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]user.Summary, error)
}

// CreateInput is the data for a new post
type CreateInput struct {
	AuthorID    string
	Description string
	Image       string
}

// CommentView is a comment with its author resolved
type CommentView struct {
	Comment
	User *user.Summary `json:"user"`
}

// View is a post with author and commenters resolved
type View struct {
	*Post
	Author   *user.Summary `json:"author"`
	Comments []CommentView `json:"comment"`
}

// LikeUpdate is pushed to the post author when likes change
type LikeUpdate struct {
	PostID string   `json:"postId"`
	Likes  []string `json:"likes"`
}

// CommentUpdate is pushed to the post author when a comment is added
type CommentUpdate struct {
	PostID   string        `json:"postId"`
	Comments []CommentView `json:"comm"`
}

// Service implements the feed
type Service struct {
	store    Store
	users    UserDirectory
	notifier Notifier
	emitter  Emitter
	policy   *bluemonday.Policy
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a post service
func NewService(store Store, users UserDirectory, notifier Notifier, emitter Emitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		users:    users,
		notifier: notifier,
		emitter:  emitter,
		policy:   bluemonday.UGCPolicy(),
		logger:   logger,
		now:      time.Now,
	}
}

// Create publishes a post. The description is sanitised of unsafe markup.
func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	description := strings.TrimSpace(s.policy.Sanitize(in.Description))
	if description == "" && in.Image == "" {
		return nil, fmt.Errorf("%w: description or image is required", errs.ErrInvalidInput)
	}
	if len(description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description is too long", errs.ErrInvalidInput)
	}

	now := s.now()
	p := &Post{
		AuthorID:    in.AuthorID,
		Description: description,
		Image:       in.Image,
		Likes:       []string{},
		Comments:    []Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	views, err := s.views(ctx, []*Post{p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Feed returns the newest posts
func (s *Service) Feed(ctx context.Context) ([]View, error) {
	posts, err := s.store.List(ctx, feedLimit)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, posts)
}

// ToggleLike likes or unlikes a post for a user. A new like on someone
// else's post notifies the author. The like is stored first; a failed
// notification is logged and does not fail the call.
func (s *Service) ToggleLike(ctx context.Context, userID, postID string) (*LikeUpdate, error) {
	p, liked, err := s.store.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if liked {
		s.notify(ctx, notification.Input{
			ReceiverID:    p.AuthorID,
			Type:          notification.TypeLike,
			RelatedUserID: userID,
			RelatedPostID: p.ID,
		})
	}

	update := &LikeUpdate{PostID: p.ID, Likes: p.Likes}
	s.emitter.Emit(p.AuthorID, EventLikeUpdated, update)
	return update, nil
}

// Comment adds a comment to a post and notifies the author
func (s *Service) Comment(ctx context.Context, userID, postID, content string) (*CommentUpdate, error) {
	content = strings.TrimSpace(s.policy.Sanitize(content))
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", errs.ErrInvalidInput)
	}
	if len(content) > maxCommentLen {
		return nil, fmt.Errorf("%w: comment is too long", errs.ErrInvalidInput)
	}

	p, err := s.store.AddComment(ctx, postID, Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notification.Input{
		ReceiverID:    p.AuthorID,
		Type:          notification.TypeComment,
		RelatedUserID: userID,
		RelatedPostID: p.ID,
	})

	views, err := s.views(ctx, []*Post{p})
	if err != nil {
		return nil, err
	}
	update := &CommentUpdate{PostID: p.ID, Comments: views[0].Comments}
	s.emitter.Emit(p.AuthorID, EventCommentAdded, update)
	return update, nil
}

func (s *Service) notify(ctx context.Context, in notification.Input) {
	if _, err := s.notifier.Notify(ctx, in); err != nil {
		s.logger.Warn("Failed to create notification",
			zap.String("post", in.RelatedPostID),
			zap.String("type", string(in.Type)),
			zap.Error(err),
		)
	}
}

func (s *Service) views(ctx context.Context, posts []*Post) ([]View, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
		for _, c := range p.Comments {
			ids = append(ids, c.UserID)
		}
	}

	cards, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	card := func(id string) *user.Summary {
		if c, ok := cards[id]; ok {
			return &c
		}
		return nil
	}

	return lo.Map(posts, func(p *Post, _ int) View {
		return View{
			Post:   p,
			Author: card(p.AuthorID),
			Comments: lo.Map(p.Comments, func(c Comment, _ int) CommentView {
				return CommentView{Comment: c, User: card(c.UserID)}
			}),
		}
	}), nil
}
