package inmemory

import (
	"context"
	"testing"

	"myblog/internal/model"
	"myblog/internal/service"

	"github.com/stretchr/testify/require"
)

func TestUserStorage(t *testing.T) {
	t.Parallel()

	s := NewUserStorage()
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, model.User{Name: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	require.Equal(t, int64(1), alice.ID)

	_, err = s.CreateUser(ctx, model.User{Name: "alice", PasswordHash: "h2"})
	require.ErrorIs(t, err, service.ErrInvalidRequest)

	got, err := s.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, alice, got)

	got, err = s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice, got)

	_, err = s.GetUserByID(ctx, 999)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = s.GetUserByName(ctx, "bob")
	require.ErrorIs(t, err, service.ErrNotFound)
}
