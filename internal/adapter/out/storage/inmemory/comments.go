package inmemory

import (
	"context"
	"sync"
	"time"

	"myblog/internal/model"
	"myblog/internal/service"
)

type CommentStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Comment
	byPost map[int64][]int64
}

func NewCommentStorage() *CommentStorage {
	return &CommentStorage{
		nextID: 1,
		byID:   make(map[int64]model.Comment),
		byPost: make(map[int64][]int64),
	}
}

func (s *CommentStorage) CreateComment(_ context.Context, in model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = s.nextID
	s.nextID++
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	s.byID[in.ID] = in
	s.byPost[in.PostID] = append(s.byPost[in.PostID], in.ID)
	return in, nil
}

func (s *CommentStorage) GetCommentByID(_ context.Context, commentID int64) (model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.byID[commentID]; ok {
		return c, nil
	}
	return model.Comment{}, service.ErrNotFound
}

func (s *CommentStorage) GetCommentsByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPost[postID]
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]model.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CommentStorage) DeleteComment(_ context.Context, commentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[commentID]
	if !ok {
		return service.ErrNotFound
	}
	delete(s.byID, commentID)

	ids := s.byPost[c.PostID]
	for i, id := range ids {
		if id == commentID {
			s.byPost[c.PostID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
