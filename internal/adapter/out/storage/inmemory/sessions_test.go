package inmemory

import (
	"context"
	"testing"
	"time"

	"myblog/internal/model"
	"myblog/internal/service"

	"github.com/stretchr/testify/require"
)

func TestSessionStorage(t *testing.T) {
	t.Parallel()

	s := NewSessionStorage()
	ctx := context.Background()

	session := model.Session{
		Token:     "tok",
		UserID:    7,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.GetSession(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, session.UserID, got.UserID)

	_, err = s.GetSession(ctx, "nope")
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, s.DeleteSession(ctx, "tok"))
	_, err = s.GetSession(ctx, "tok")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSessionStorage_PopFlashIsOneShot(t *testing.T) {
	t.Parallel()

	s := NewSessionStorage()
	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, model.Session{Token: "tok", UserID: 7}))
	require.NoError(t, s.SetFlash(ctx, "tok", model.Flash{Success: "saved"}))

	flash, err := s.PopFlash(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, "saved", flash.Success)

	flash, err = s.PopFlash(ctx, "tok")
	require.NoError(t, err)
	require.True(t, flash.Empty())

	require.ErrorIs(t, s.SetFlash(ctx, "nope", model.Flash{}), service.ErrNotFound)
	_, err = s.PopFlash(ctx, "nope")
	require.ErrorIs(t, err, service.ErrNotFound)
}
