package service

import (
	"context"
	"errors"
	"fmt"

	"myblog/internal/model"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=users.go -destination=./user_storage_mock.go -package=service myblog/internal/service UserStorage
type UserStorage interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
	GetUserByName(ctx context.Context, name string) (model.User, error)
}

type UserService struct {
	userStorage UserStorage
}

func NewUserService(userStorage UserStorage) *UserService {
	return &UserService{userStorage: userStorage}
}

// Register creates a user with a bcrypt password hash. A taken name
// surfaces as ErrInvalidRequest from storage.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}
	return s.userStorage.CreateUser(ctx, model.User{
		Name:         req.Name,
		PasswordHash: string(hash),
	})
}

// Authenticate verifies name/password. Both an unknown name and a bad
// password come back as ErrInvalidRequest so the two are not
// distinguishable by the caller.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (model.User, error) {
	if name == "" || password == "" {
		return model.User{}, ErrInvalidRequest
	}
	user, err := s.userStorage.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.User{}, fmt.Errorf("%w: wrong name or password", ErrInvalidRequest)
		}
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, fmt.Errorf("%w: wrong name or password", ErrInvalidRequest)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrInvalidRequest
	}
	return s.userStorage.GetUserByID(ctx, userID)
}

func (s *UserService) GetUserByName(ctx context.Context, name string) (model.User, error) {
	if name == "" {
		return model.User{}, ErrInvalidRequest
	}
	return s.userStorage.GetUserByName(ctx, name)
}
