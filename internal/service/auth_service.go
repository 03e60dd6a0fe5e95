package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"covoiturage/internal/auth"
	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
	"covoiturage/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, user *model.User, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) AuthService {
	return &authService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new user with a hashed password. A username that is
// already taken is reported as ErrUsernameTaken.
func (s *authService) Register(ctx context.Context, user *model.User, password string) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, user.Username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.EstAdmin = false

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a signed session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
