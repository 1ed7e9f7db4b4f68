package service

import (
	"context"
	"fmt"

	"myblog/internal/model"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=comments.go -destination=./comment_storage_mock.go -package=service myblog/internal/service CommentStorage
type CommentStorage interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

type CommentService struct {
	commentStorage CommentStorage
	postStorage    PostStorage
}

func NewCommentService(commentStorage CommentStorage, postStorage PostStorage) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		postStorage:    postStorage,
	}
}

// CreateComment inserts a comment after checking the target post exists.
func (s *CommentService) CreateComment(ctx context.Context, req CreateCommentRequest) (model.Comment, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if _, err := s.postStorage.GetPostAuthorID(ctx, req.PostID); err != nil {
		return model.Comment{}, err
	}
	return s.commentStorage.CreateComment(ctx, model.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
}

// RemoveComment deletes a comment; only its author may do so.
func (s *CommentService) RemoveComment(ctx context.Context, commentID, userID int64) (model.Comment, error) {
	if commentID <= 0 || userID <= 0 {
		return model.Comment{}, ErrInvalidRequest
	}
	comment, err := s.commentStorage.GetCommentByID(ctx, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if comment.AuthorID != userID {
		return model.Comment{}, fmt.Errorf("%w: not the comment author", ErrForbidden)
	}
	if err := s.commentStorage.DeleteComment(ctx, commentID); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}
