package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"myblog/internal/model"
	"myblog/internal/service"
)

type UserStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.User
	byName map[string]int64
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		nextID: 1,
		byID:   make(map[int64]model.User),
		byName: make(map[string]int64),
	}
}

func (s *UserStorage) CreateUser(_ context.Context, in model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[in.Name]; taken {
		return model.User{}, fmt.Errorf("%w: name already taken", service.ErrInvalidRequest)
	}
	in.ID = s.nextID
	s.nextID++
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	s.byID[in.ID] = in
	s.byName[in.Name] = in.ID
	return in, nil
}

func (s *UserStorage) GetUserByID(_ context.Context, userID int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, ok := s.byID[userID]; ok {
		return user, nil
	}
	return model.User{}, service.ErrNotFound
}

func (s *UserStorage) GetUserByName(_ context.Context, name string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.byName[name]; ok {
		return s.byID[id], nil
	}
	return model.User{}, service.ErrNotFound
}
