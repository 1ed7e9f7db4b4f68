package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"myblog/internal/adapter/out/storage"
	"myblog/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func passthroughTx(m *MockTransactor) {
	m.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
}

func newPostService(t *testing.T) (*PostService, *MockPostStorage, *MockCommentStorage, *MockTransactor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ps := NewMockPostStorage(ctrl)
	cs := NewMockCommentStorage(ctrl)
	tx := NewMockTransactor(ctrl)
	return NewPostService(ps, cs, tx), ps, cs, tx
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		req     CreatePostRequest
		setup   func(m *MockPostStorage)
		wantErr error
	}{
		{
			name:    "validation error",
			req:     CreatePostRequest{},
			setup:   func(_ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "empty title",
			req:     CreatePostRequest{AuthorID: 7, Content: "x"},
			setup:   func(_ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "storage error",
			req:  CreatePostRequest{AuthorID: 7, Title: "t", Content: "x"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().
					CreatePost(gomock.Any(), model.Post{AuthorID: 7, Title: "t", Content: "x"}).
					Return(model.Post{}, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
		{
			name: "success",
			req:  CreatePostRequest{AuthorID: 7, Title: "t", Content: "x", Hidden: true},
			setup: func(m *MockPostStorage) {
				m.EXPECT().
					CreatePost(gomock.Any(), model.Post{AuthorID: 7, Title: "t", Content: "x", Hidden: true}).
					Return(model.Post{ID: 10, AuthorID: 7, Title: "t", Content: "x", Hidden: true, CreatedAt: now}, nil)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, ps, _, _ := newPostService(t)
			tt.setup(ps)

			got, err := svc.CreatePost(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidRequest) {
					require.ErrorIs(t, err, ErrInvalidRequest)
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, int64(10), got.ID)
			require.True(t, got.Hidden)
			require.WithinDuration(t, now, got.CreatedAt, time.Second)
		})
	}
}

func TestPostService_ListPosts(t *testing.T) {
	t.Parallel()

	author := int64(7)
	other := int64(8)

	tests := []struct {
		name           string
		req            ListPostsRequest
		wantFilter     storage.ListPostsFilter
		wantLimit      int
		wantOffset     int
		total          int
		returned       int
		expectPages    int
		expectPageNum  int
	}{
		{
			name:          "defaults",
			req:           ListPostsRequest{},
			wantFilter:    storage.ListPostsFilter{},
			wantLimit:     10,
			wantOffset:    0,
			total:         25,
			returned:      10,
			expectPages:   3,
			expectPageNum: 1,
		},
		{
			name:          "own posts reveal hidden",
			req:           ListPostsRequest{AuthorID: &author, ViewerID: &author, Page: 2, Rows: 5},
			wantFilter:    storage.ListPostsFilter{AuthorID: &author, IncludeHidden: true},
			wantLimit:     5,
			wantOffset:    5,
			total:         12,
			returned:      5,
			expectPages:   3,
			expectPageNum: 2,
		},
		{
			name:          "foreign author keeps hidden out",
			req:           ListPostsRequest{AuthorID: &author, ViewerID: &other},
			wantFilter:    storage.ListPostsFilter{AuthorID: &author},
			wantLimit:     10,
			wantOffset:    0,
			total:         3,
			returned:      3,
			expectPages:   1,
			expectPageNum: 1,
		},
		{
			name:          "page beyond the end is empty",
			req:           ListPostsRequest{Page: 9, Rows: 10},
			wantFilter:    storage.ListPostsFilter{},
			wantLimit:     10,
			wantOffset:    80,
			total:         15,
			returned:      0,
			expectPages:   2,
			expectPageNum: 9,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, ps, _, _ := newPostService(t)

			ps.EXPECT().
				CountPosts(gomock.Any(), tt.wantFilter).
				Return(tt.total, nil)

			ret := make([]model.Post, tt.returned)
			ps.EXPECT().
				ListPosts(gomock.Any(), storage.ListPostsParams{
					Filter: tt.wantFilter,
					Limit:  tt.wantLimit,
					Offset: tt.wantOffset,
				}).
				Return(ret, nil)

			page, err := svc.ListPosts(context.Background(), tt.req)
			require.NoError(t, err)
			require.Len(t, page.Items, tt.returned)
			require.Equal(t, tt.total, page.Total)
			require.Equal(t, tt.expectPages, page.Pages)
			require.Equal(t, tt.expectPageNum, page.Page)
		})
	}
}

func TestPostService_GetPost(t *testing.T) {
	t.Parallel()

	authorID := int64(1)
	strangerID := int64(2)

	tests := []struct {
		name     string
		viewerID *int64
		post     model.Post
		postErr  error
		wantErr  error
	}{
		{
			name:     "visible post for anonymous viewer",
			viewerID: nil,
			post:     model.Post{ID: 5, AuthorID: authorID},
		},
		{
			name:     "hidden post for author",
			viewerID: &authorID,
			post:     model.Post{ID: 5, AuthorID: authorID, Hidden: true},
		},
		{
			name:     "hidden post for stranger",
			viewerID: &strangerID,
			post:     model.Post{ID: 5, AuthorID: authorID, Hidden: true},
			wantErr:  ErrForbidden,
		},
		{
			name:     "hidden post for anonymous viewer",
			viewerID: nil,
			post:     model.Post{ID: 5, AuthorID: authorID, Hidden: true},
			wantErr:  ErrForbidden,
		},
		{
			name:    "missing post",
			postErr: ErrNotFound,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, ps, cs, _ := newPostService(t)

			ps.EXPECT().
				GetPostByID(gomock.Any(), int64(5)).
				Return(tt.post, tt.postErr)
			cs.EXPECT().
				GetCommentsByPost(gomock.Any(), int64(5)).
				Return([]model.Comment{{ID: 1, PostID: 5}}, nil).
				AnyTimes()
			ps.EXPECT().
				IncrementViews(gomock.Any(), int64(5)).
				Return(nil).
				AnyTimes()

			post, comments, err := svc.GetPost(context.Background(), 5, tt.viewerID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Zero(t, post)
				require.Nil(t, comments)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.post, post)
			require.Len(t, comments, 1)
		})
	}
}

func TestPostService_GetPost_InvalidID(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPostService(t)
	_, _, err := svc.GetPost(context.Background(), 0, nil)
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestPostService_EditPost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     EditPostRequest
		setup   func(m *MockPostStorage)
		wantErr error
	}{
		{
			name:    "validation error",
			req:     EditPostRequest{PostID: 1, EditorID: 1},
			setup:   func(_ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "not owner",
			req:  EditPostRequest{PostID: 10, EditorID: 2, Title: "t", Content: "c"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(1), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "missing post",
			req:  EditPostRequest{PostID: 10, EditorID: 2, Title: "t", Content: "c"},
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(0), ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "success",
			req:  EditPostRequest{PostID: 10, EditorID: 1, Title: "t2", Content: "c2", Hidden: true},
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(1), nil)
				m.EXPECT().
					UpdatePost(gomock.Any(), int64(10), storage.UpdatePostParams{
						Title: "t2", Content: "c2", Hidden: true,
					}).
					Return(nil)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, ps, _, _ := newPostService(t)
			tt.setup(ps)

			err := svc.EditPost(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostService_RemovePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(m *MockPostStorage)
		wantErr error
	}{
		{
			name: "not owner leaves post untouched",
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(9), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "owner deletes",
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(1), nil)
				m.EXPECT().DeletePost(gomock.Any(), int64(10)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, ps, _, _ := newPostService(t)
			tt.setup(ps)

			err := svc.RemovePost(context.Background(), 10, 1)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostService_ToggleHide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		post       model.Post
		wantHidden bool
	}{
		{
			name:       "visible becomes hidden",
			post:       model.Post{ID: 10, AuthorID: 1, Hidden: false},
			wantHidden: true,
		},
		{
			name:       "hidden becomes visible",
			post:       model.Post{ID: 10, AuthorID: 1, Hidden: true},
			wantHidden: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, ps, _, _ := newPostService(t)

			ps.EXPECT().GetPostByID(gomock.Any(), int64(10)).Return(tt.post, nil)
			ps.EXPECT().SetHidden(gomock.Any(), int64(10), tt.wantHidden).Return(nil)

			hidden, err := svc.ToggleHide(context.Background(), 10, 1)
			require.NoError(t, err)
			require.Equal(t, tt.wantHidden, hidden)
		})
	}
}

func TestPostService_ToggleHide_NotOwner(t *testing.T) {
	t.Parallel()

	svc, ps, _, _ := newPostService(t)
	ps.EXPECT().GetPostByID(gomock.Any(), int64(10)).Return(model.Post{ID: 10, AuthorID: 1}, nil)

	_, err := svc.ToggleHide(context.Background(), 10, 2)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPostService_ToggleFavourite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		setup        func(m *MockPostStorage)
		wantFavoured bool
		wantErr      error
	}{
		{
			name: "not favourited yet -> added",
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(1), nil)
				m.EXPECT().IsFavourite(gomock.Any(), int64(10), int64(2)).Return(false, nil)
				m.EXPECT().AddFavourite(gomock.Any(), int64(10), int64(2)).Return(nil)
			},
			wantFavoured: true,
		},
		{
			name: "already favourited -> removed",
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(1), nil)
				m.EXPECT().IsFavourite(gomock.Any(), int64(10), int64(2)).Return(true, nil)
				m.EXPECT().RemoveFavourite(gomock.Any(), int64(10), int64(2)).Return(nil)
			},
			wantFavoured: false,
		},
		{
			name: "missing post",
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(0), ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "write error inside transaction",
			setup: func(m *MockPostStorage) {
				m.EXPECT().GetPostAuthorID(gomock.Any(), int64(10)).Return(int64(1), nil)
				m.EXPECT().IsFavourite(gomock.Any(), int64(10), int64(2)).Return(false, nil)
				m.EXPECT().AddFavourite(gomock.Any(), int64(10), int64(2)).Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, ps, _, tx := newPostService(t)
			passthroughTx(tx)
			tt.setup(ps)

			favoured, err := svc.ToggleFavourite(context.Background(), 10, 2)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrNotFound) {
					require.ErrorIs(t, err, ErrNotFound)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantFavoured, favoured)
		})
	}
}
