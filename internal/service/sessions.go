package service

import (
	"context"
	"fmt"
	"time"

	"myblog/internal/model"

	"github.com/google/uuid"
)

const DefaultSessionTTL = 24 * time.Hour

//go:generate mockgen -source=sessions.go -destination=./session_storage_mock.go -package=service myblog/internal/service SessionStorage
type SessionStorage interface {
	CreateSession(ctx context.Context, session model.Session) error
	GetSession(ctx context.Context, token string) (model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	SetFlash(ctx context.Context, token string, flash model.Flash) error
	// PopFlash returns the stored flash and clears it in one step.
	PopFlash(ctx context.Context, token string) (model.Flash, error)
}

type SessionService struct {
	sessionStorage SessionStorage
	ttl            time.Duration
}

func NewSessionService(sessionStorage SessionStorage, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		sessionStorage: sessionStorage,
		ttl:            ttl,
	}
}

// Start opens a session for the user and returns it with a fresh token.
func (s *SessionService) Start(ctx context.Context, userID int64) (model.Session, error) {
	if userID <= 0 {
		return model.Session{}, ErrInvalidRequest
	}
	session := model.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.sessionStorage.CreateSession(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

// Get resolves a token to a live session. Expired sessions are deleted
// and reported as not found.
func (s *SessionService) Get(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, ErrInvalidRequest
	}
	session, err := s.sessionStorage.GetSession(ctx, token)
	if err != nil {
		return model.Session{}, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessionStorage.DeleteSession(ctx, token)
		return model.Session{}, fmt.Errorf("session expired: %w", ErrNotFound)
	}
	return session, nil
}

func (s *SessionService) End(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidRequest
	}
	return s.sessionStorage.DeleteSession(ctx, token)
}

func (s *SessionService) FlashSuccess(ctx context.Context, token, msg string) error {
	return s.sessionStorage.SetFlash(ctx, token, model.Flash{Success: msg})
}

func (s *SessionService) FlashError(ctx context.Context, token, msg string) error {
	return s.sessionStorage.SetFlash(ctx, token, model.Flash{Error: msg})
}

// PopFlash reads and clears the pending flash, if any.
func (s *SessionService) PopFlash(ctx context.Context, token string) (model.Flash, error) {
	if token == "" {
		return model.Flash{}, nil
	}
	return s.sessionStorage.PopFlash(ctx, token)
}
