package service

import (
	"context"
	"errors"
	"testing"

	"myblog/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCommentService(t *testing.T) (*CommentService, *MockCommentStorage, *MockPostStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cs := NewMockCommentStorage(ctrl)
	ps := NewMockPostStorage(ctrl)
	return NewCommentService(cs, ps), cs, ps
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreateCommentRequest
		setup   func(cs *MockCommentStorage, ps *MockPostStorage)
		wantErr error
	}{
		{
			name:    "empty content",
			req:     CreateCommentRequest{PostID: 5, AuthorID: 2},
			setup:   func(_ *MockCommentStorage, _ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "post does not exist",
			req:  CreateCommentRequest{PostID: 5, AuthorID: 2, Content: "hi"},
			setup: func(_ *MockCommentStorage, ps *MockPostStorage) {
				ps.EXPECT().GetPostAuthorID(gomock.Any(), int64(5)).Return(int64(0), ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "success",
			req:  CreateCommentRequest{PostID: 5, AuthorID: 2, Content: "hi"},
			setup: func(cs *MockCommentStorage, ps *MockPostStorage) {
				ps.EXPECT().GetPostAuthorID(gomock.Any(), int64(5)).Return(int64(1), nil)
				cs.EXPECT().
					CreateComment(gomock.Any(), model.Comment{PostID: 5, AuthorID: 2, Content: "hi"}).
					Return(model.Comment{ID: 3, PostID: 5, AuthorID: 2, Content: "hi"}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, cs, ps := newCommentService(t)
			tt.setup(cs, ps)

			got, err := svc.CreateComment(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(3), got.ID)
			require.Equal(t, "hi", got.Content)
		})
	}
}

func TestCommentService_RemoveComment(t *testing.T) {
	t.Parallel()

	comment := model.Comment{ID: 3, PostID: 5, AuthorID: 2, Content: "hi"}

	tests := []struct {
		name      string
		commentID int64
		userID    int64
		setup     func(cs *MockCommentStorage)
		wantErr   error
	}{
		{
			name:    "invalid ids",
			setup:   func(_ *MockCommentStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:      "missing comment",
			commentID: 3,
			userID:    2,
			setup: func(cs *MockCommentStorage) {
				cs.EXPECT().GetCommentByID(gomock.Any(), int64(3)).Return(model.Comment{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "not the author",
			commentID: 3,
			userID:    9,
			setup: func(cs *MockCommentStorage) {
				cs.EXPECT().GetCommentByID(gomock.Any(), int64(3)).Return(comment, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:      "delete fails",
			commentID: 3,
			userID:    2,
			setup: func(cs *MockCommentStorage) {
				cs.EXPECT().GetCommentByID(gomock.Any(), int64(3)).Return(comment, nil)
				cs.EXPECT().DeleteComment(gomock.Any(), int64(3)).Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
		{
			name:      "success returns the deleted comment",
			commentID: 3,
			userID:    2,
			setup: func(cs *MockCommentStorage) {
				cs.EXPECT().GetCommentByID(gomock.Any(), int64(3)).Return(comment, nil)
				cs.EXPECT().DeleteComment(gomock.Any(), int64(3)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, cs, _ := newCommentService(t)
			tt.setup(cs)

			got, err := svc.RemoveComment(context.Background(), tt.commentID, tt.userID)

			if tt.wantErr != nil {
				require.Error(t, err)
				switch {
				case errors.Is(tt.wantErr, ErrInvalidRequest),
					errors.Is(tt.wantErr, ErrNotFound),
					errors.Is(tt.wantErr, ErrForbidden):
					require.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, comment, got)
		})
	}
}
