package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/connection"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/notification"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/post"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	alice := &user.User{Email: "alice@example.com", UserName: "alice", FirstName: "Alice", Skills: []string{"Go"}}
	require.NoError(t, s.Create(ctx, alice))
	require.NotEmpty(t, alice.ID)

	t.Run("duplicates conflict", func(t *testing.T) {
		err := s.Create(ctx, &user.User{Email: "alice@example.com", UserName: "other"})
		assert.ErrorIs(t, err, errs.ErrConflict)

		err = s.Create(ctx, &user.User{Email: "other@example.com", UserName: "alice"})
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("returned copies are detached", func(t *testing.T) {
		got, err := s.Get(ctx, alice.ID)
		require.NoError(t, err)
		got.Skills[0] = "Rust"

		again, err := s.Get(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, again.Skills)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, errs.ErrNotFound)
		_, err = s.GetByEmail(ctx, "nope@example.com")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	bob := &user.User{Email: "bob@example.com", UserName: "bob", FirstName: "Bob"}
	require.NoError(t, s.Create(ctx, bob))

	t.Run("search matches names and skills", func(t *testing.T) {
		found, err := s.Search(ctx, "go", 10)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, alice.ID, found[0].ID)
	})

	t.Run("connections are symmetric", func(t *testing.T) {
		require.NoError(t, s.AddConnection(ctx, alice.ID, bob.ID))
		require.NoError(t, s.AddConnection(ctx, alice.ID, bob.ID))

		a, _ := s.Get(ctx, alice.ID)
		b, _ := s.Get(ctx, bob.ID)
		assert.Equal(t, []string{bob.ID}, a.Connections)
		assert.Equal(t, []string{alice.ID}, b.Connections)

		others, err := s.ListExcluding(ctx, append([]string{alice.ID}, a.Connections...), 10)
		require.NoError(t, err)
		assert.Empty(t, others)

		require.NoError(t, s.RemoveConnection(ctx, bob.ID, alice.ID))
		a, _ = s.Get(ctx, alice.ID)
		assert.Empty(t, a.Connections)
	})
}

func TestPostStore(t *testing.T) {
	ctx := context.Background()
	s := NewPostStore()

	older := &post.Post{AuthorID: "u1", Description: "first", CreatedAt: time.Now().Add(-time.Minute)}
	newer := &post.Post{AuthorID: "u1", Description: "second", CreatedAt: time.Now()}
	require.NoError(t, s.Create(ctx, older))
	require.NoError(t, s.Create(ctx, newer))

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	p, liked, err := s.ToggleLike(ctx, older.ID, "u2")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []string{"u2"}, p.Likes)

	p, liked, err = s.ToggleLike(ctx, older.ID, "u2")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, p.Likes)

	p, err = s.AddComment(ctx, older.ID, post.Comment{ID: "c1", UserID: "u2", Content: "nice"})
	require.NoError(t, err)
	assert.Len(t, p.Comments, 1)

	_, _, err = s.ToggleLike(ctx, "missing", "u2")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestConnectionStore(t *testing.T) {
	ctx := context.Background()
	s := NewConnectionStore()

	r := &connection.Request{SenderID: "a", ReceiverID: "b", Status: connection.StatusPending, CreatedAt: time.Now()}
	require.NoError(t, s.Create(ctx, r))

	got, err := s.FindPending(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = s.FindPending(ctx, "b", "a")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	pending, err := s.ListPendingFor(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	updated, err := s.UpdateStatus(ctx, r.ID, connection.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, connection.StatusAccepted, updated.Status)

	_, err = s.FindPending(ctx, "a", "b")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, s.DeleteBetween(ctx, "b", "a"))
	_, err = s.Get(ctx, r.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestNotificationStore(t *testing.T) {
	ctx := context.Background()
	s := NewNotificationStore()

	for i, receiver := range []string{"u1", "u1", "u2"} {
		n := &notification.Notification{
			ReceiverID: receiver,
			Type:       notification.TypeLike,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.Create(ctx, n))
	}

	list, err := s.ListFor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))

	require.NoError(t, s.Delete(ctx, list[0].ID))
	assert.ErrorIs(t, s.Delete(ctx, list[0].ID), errs.ErrNotFound)

	n, err := s.DeleteAllFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rest, err := s.ListFor(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
