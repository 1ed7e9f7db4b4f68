package inmemory

import (
	"context"
	"testing"

	"myblog/internal/model"
	"myblog/internal/service"

	"github.com/stretchr/testify/require"
)

func TestCommentStorage(t *testing.T) {
	t.Parallel()

	s := NewCommentStorage()
	ctx := context.Background()

	first, err := s.CreateComment(ctx, model.Comment{PostID: 5, AuthorID: 1, Content: "one"})
	require.NoError(t, err)
	second, err := s.CreateComment(ctx, model.Comment{PostID: 5, AuthorID: 2, Content: "two"})
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, model.Comment{PostID: 6, AuthorID: 1, Content: "other post"})
	require.NoError(t, err)

	got, err := s.GetCommentByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first, got)

	// insertion order is preserved per post
	comments, err := s.GetCommentsByPost(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, []model.Comment{first, second}, comments)

	comments, err = s.GetCommentsByPost(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, comments)

	require.NoError(t, s.DeleteComment(ctx, first.ID))
	require.ErrorIs(t, s.DeleteComment(ctx, first.ID), service.ErrNotFound)

	comments, err = s.GetCommentsByPost(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, []model.Comment{second}, comments)
}
