package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"myblog/internal/adapter/out/storage"
	"myblog/internal/model"
	"myblog/internal/service"
)

type PostStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Post

	// favourite relation, indexed from both sides
	favByPost map[int64]map[int64]struct{}
	favByUser map[int64]map[int64]struct{}
}

func NewPostStorage() *PostStorage {
	return &PostStorage{
		nextID:    1,
		byID:      make(map[int64]model.Post),
		favByPost: make(map[int64]map[int64]struct{}),
		favByUser: make(map[int64]map[int64]struct{}),
	}
}

// Transactor satisfies service.Transactor for the in-memory backend,
// where every storage call is already atomic under the mutex.
type Transactor struct{}

func (Transactor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = s.nextID
	s.nextID++
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	s.byID[in.ID] = in
	return in, nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.byID[postID]; ok {
		return post, nil
	}
	return model.Post{}, service.ErrNotFound
}

func matchesFilter(p model.Post, filter storage.ListPostsFilter) bool {
	if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
		return false
	}
	if p.Hidden && !filter.IncludeHidden {
		return false
	}
	return true
}

func (s *PostStorage) ListPosts(_ context.Context, params storage.ListPostsParams) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Post, 0, len(s.byID))
	for _, p := range s.byID {
		if matchesFilter(p, params.Filter) {
			matched = append(matched, p)
		}
	}
	// newest first, id as tie-breaker, same as the postgres ORDER BY
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if params.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[params.Offset:]
	if params.Limit > 0 && len(matched) > params.Limit {
		matched = matched[:params.Limit]
	}
	return matched, nil
}

func (s *PostStorage) CountPosts(_ context.Context, filter storage.ListPostsFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, p := range s.byID {
		if matchesFilter(p, filter) {
			total++
		}
	}
	return total, nil
}

func (s *PostStorage) UpdatePost(_ context.Context, postID int64, params storage.UpdatePostParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[postID]
	if !ok {
		return service.ErrNotFound
	}
	p.Title = params.Title
	p.Content = params.Content
	p.Hidden = params.Hidden
	s.byID[postID] = p
	return nil
}

func (s *PostStorage) DeletePost(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[postID]; !ok {
		return service.ErrNotFound
	}
	delete(s.byID, postID)
	for userID := range s.favByPost[postID] {
		delete(s.favByUser[userID], postID)
	}
	delete(s.favByPost, postID)
	return nil
}

func (s *PostStorage) SetHidden(_ context.Context, postID int64, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[postID]
	if !ok {
		return service.ErrNotFound
	}
	p.Hidden = hidden
	s.byID[postID] = p
	return nil
}

func (s *PostStorage) IncrementViews(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[postID]
	if !ok {
		return service.ErrNotFound
	}
	p.Views++
	s.byID[postID] = p
	return nil
}

func (s *PostStorage) GetPostAuthorID(_ context.Context, postID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[postID]
	if !ok {
		return 0, service.ErrNotFound
	}
	return p.AuthorID, nil
}

func (s *PostStorage) IsFavourite(_ context.Context, postID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.favByPost[postID][userID]
	return ok, nil
}

func (s *PostStorage) AddFavourite(_ context.Context, postID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[postID]
	if !ok {
		return service.ErrNotFound
	}
	if s.favByPost[postID] == nil {
		s.favByPost[postID] = make(map[int64]struct{})
	}
	if s.favByUser[userID] == nil {
		s.favByUser[userID] = make(map[int64]struct{})
	}
	s.favByPost[postID][userID] = struct{}{}
	s.favByUser[userID][postID] = struct{}{}
	p.FavouriteCount = int64(len(s.favByPost[postID]))
	s.byID[postID] = p
	return nil
}

func (s *PostStorage) RemoveFavourite(_ context.Context, postID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[postID]
	if !ok {
		return service.ErrNotFound
	}
	if _, ok := s.favByPost[postID][userID]; !ok {
		return service.ErrNotFound
	}
	delete(s.favByPost[postID], userID)
	delete(s.favByUser[userID], postID)
	p.FavouriteCount = int64(len(s.favByPost[postID]))
	s.byID[postID] = p
	return nil
}

func (s *PostStorage) GetFavouriteUserIDs(_ context.Context, postID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.favByPost[postID]), nil
}

func (s *PostStorage) GetFavouritePostIDs(_ context.Context, userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.favByUser[userID]), nil
}

func sortedIDs(set map[int64]struct{}) []int64 {
	if len(set) == 0 {
		return nil
	}
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
