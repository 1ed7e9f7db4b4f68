package inmemory

import (
	"context"
	"sync"

	"myblog/internal/model"
	"myblog/internal/service"
)

type SessionStorage struct {
	mu      sync.RWMutex
	byToken map[string]model.Session
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		byToken: make(map[string]model.Session),
	}
}

func (s *SessionStorage) CreateSession(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[session.Token] = session
	return nil
}

func (s *SessionStorage) GetSession(_ context.Context, token string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if session, ok := s.byToken[token]; ok {
		return session, nil
	}
	return model.Session{}, service.ErrNotFound
}

func (s *SessionStorage) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}

func (s *SessionStorage) SetFlash(_ context.Context, token string, flash model.Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byToken[token]
	if !ok {
		return service.ErrNotFound
	}
	session.Flash = flash
	s.byToken[token] = session
	return nil
}

func (s *SessionStorage) PopFlash(_ context.Context, token string) (model.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byToken[token]
	if !ok {
		return model.Flash{}, service.ErrNotFound
	}
	flash := session.Flash
	session.Flash = model.Flash{}
	s.byToken[token] = session
	return flash, nil
}
