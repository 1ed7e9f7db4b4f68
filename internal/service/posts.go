package service

import (
	"context"
	"fmt"

	"myblog/internal/adapter/out/storage"
	"myblog/internal/model"
	"myblog/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service myblog/internal/service PostStorage
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	ListPosts(ctx context.Context, params storage.ListPostsParams) ([]model.Post, error)
	CountPosts(ctx context.Context, filter storage.ListPostsFilter) (int, error)
	UpdatePost(ctx context.Context, postID int64, params storage.UpdatePostParams) error
	DeletePost(ctx context.Context, postID int64) error
	SetHidden(ctx context.Context, postID int64, hidden bool) error
	IncrementViews(ctx context.Context, postID int64) error
	GetPostAuthorID(ctx context.Context, postID int64) (int64, error)

	IsFavourite(ctx context.Context, postID, userID int64) (bool, error)
	AddFavourite(ctx context.Context, postID, userID int64) error
	RemoveFavourite(ctx context.Context, postID, userID int64) error
	GetFavouriteUserIDs(ctx context.Context, postID int64) ([]int64, error)
	GetFavouritePostIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Transactor runs fn inside a storage transaction. Satisfied by
// trm's *manager.Manager for postgres and by a pass-through for the
// in-memory backend.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type PostService struct {
	postStorage    PostStorage
	commentStorage CommentStorage
	tx             Transactor
}

func NewPostService(postStorage PostStorage, commentStorage CommentStorage, tx Transactor) *PostService {
	return &PostService{
		postStorage:    postStorage,
		commentStorage: commentStorage,
		tx:             tx,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.postStorage.CreatePost(ctx, model.Post{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Content:  req.Content,
		Hidden:   req.Hidden,
	})
}

// ListPosts returns one page of posts. Hidden posts appear only when
// the viewer filters by their own author id.
func (s *PostService) ListPosts(ctx context.Context, req ListPostsRequest) (pagination.Page[model.Post], error) {
	var page pagination.Page[model.Post]

	pr := pagination.PageRequest{Page: req.Page, Rows: req.Rows}.Normalize()

	filter := storage.ListPostsFilter{AuthorID: req.AuthorID}
	if req.AuthorID != nil && req.ViewerID != nil && *req.AuthorID == *req.ViewerID {
		filter.IncludeHidden = true
	}

	total, err := s.postStorage.CountPosts(ctx, filter)
	if err != nil {
		return page, err
	}

	posts, err := s.postStorage.ListPosts(ctx, storage.ListPostsParams{
		Filter: filter,
		Limit:  pr.Rows,
		Offset: pr.Offset(),
	})
	if err != nil {
		return page, err
	}

	page.Items = posts
	page.Page = pr.Page
	page.Rows = pr.Rows
	page.Total = total
	page.Pages = pagination.PagesFor(total, pr.Rows)
	return page, nil
}

// GetPost fetches the post and its comments and bumps the view counter,
// all issued concurrently and joined before the visibility check. A
// hidden post is readable only by its author.
func (s *PostService) GetPost(ctx context.Context, postID int64, viewerID *int64) (model.Post, []model.Comment, error) {
	if postID <= 0 {
		return model.Post{}, nil, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	var (
		post     model.Post
		comments []model.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post, err = s.postStorage.GetPostByID(gctx, postID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.commentStorage.GetCommentsByPost(gctx, postID)
		return err
	})
	g.Go(func() error {
		return s.postStorage.IncrementViews(gctx, postID)
	})
	if err := g.Wait(); err != nil {
		return model.Post{}, nil, err
	}

	if post.Hidden && (viewerID == nil || *viewerID != post.AuthorID) {
		return model.Post{}, nil, fmt.Errorf("post is hidden: %w", ErrForbidden)
	}
	return post, comments, nil
}

// GetRawPost fetches a post without touching the view counter, for the
// edit form. Only the author may see it.
func (s *PostService) GetRawPost(ctx context.Context, postID, editorID int64) (model.Post, error) {
	if postID <= 0 || editorID <= 0 {
		return model.Post{}, ErrInvalidRequest
	}
	post, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}
	if post.AuthorID != editorID {
		return model.Post{}, fmt.Errorf("%w: not the post author", ErrForbidden)
	}
	return post, nil
}

func (s *PostService) EditPost(ctx context.Context, req EditPostRequest) error {
	if err := validator.New().Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := s.checkOwnership(ctx, req.PostID, req.EditorID); err != nil {
		return err
	}
	return s.postStorage.UpdatePost(ctx, req.PostID, storage.UpdatePostParams{
		Title:   req.Title,
		Content: req.Content,
		Hidden:  req.Hidden,
	})
}

func (s *PostService) RemovePost(ctx context.Context, postID, editorID int64) error {
	if postID <= 0 || editorID <= 0 {
		return ErrInvalidRequest
	}
	if err := s.checkOwnership(ctx, postID, editorID); err != nil {
		return err
	}
	return s.postStorage.DeletePost(ctx, postID)
}

// ToggleHide flips the hidden flag and reports the new value.
func (s *PostService) ToggleHide(ctx context.Context, postID, editorID int64) (bool, error) {
	if postID <= 0 || editorID <= 0 {
		return false, ErrInvalidRequest
	}
	post, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post.AuthorID != editorID {
		return false, fmt.Errorf("%w: not the post author", ErrForbidden)
	}
	hidden := !post.Hidden
	if err := s.postStorage.SetHidden(ctx, postID, hidden); err != nil {
		return false, err
	}
	return hidden, nil
}

// ToggleFavourite adds the user to the post's favourite set, or removes
// them if already present. The membership check and the write run in
// one transaction so the relation and the post counter cannot diverge.
// Reports whether the post ends up favourited.
func (s *PostService) ToggleFavourite(ctx context.Context, postID, userID int64) (bool, error) {
	if postID <= 0 || userID <= 0 {
		return false, ErrInvalidRequest
	}
	if _, err := s.postStorage.GetPostAuthorID(ctx, postID); err != nil {
		return false, err
	}

	var favoured bool
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		has, err := s.postStorage.IsFavourite(ctx, postID, userID)
		if err != nil {
			return err
		}
		if has {
			favoured = false
			return s.postStorage.RemoveFavourite(ctx, postID, userID)
		}
		favoured = true
		return s.postStorage.AddFavourite(ctx, postID, userID)
	})
	if err != nil {
		return false, err
	}
	return favoured, nil
}

func (s *PostService) FavouritesOfPost(ctx context.Context, postID int64) ([]int64, error) {
	if postID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.postStorage.GetFavouriteUserIDs(ctx, postID)
}

func (s *PostService) FavouritesOfUser(ctx context.Context, userID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.postStorage.GetFavouritePostIDs(ctx, userID)
}

func (s *PostService) checkOwnership(ctx context.Context, postID, userID int64) error {
	authorID, err := s.postStorage.GetPostAuthorID(ctx, postID)
	if err != nil {
		return err
	}
	if authorID != userID {
		return fmt.Errorf("%w: not the post author", ErrForbidden)
	}
	return nil
}
