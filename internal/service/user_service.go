package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"covoiturage/internal/auth"
	"covoiturage/internal/cache"
	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
	"covoiturage/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserUpdate carries the mutable user fields. An empty MotDePasse keeps the
// stored hash.
type UserUpdate struct {
	Nom         string
	Prenom      string
	Age         int
	Username    string
	Numtel      string
	PhotoProfil string
	Securise    bool
	MotDePasse  string
}

// UserService exposes user domain operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, upd UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	cache  *cache.Client
}

// NewUserService builds a UserService with repository, hasher and cache.
func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, cache *cache.Client) UserService {
	return &userService{users: users, hasher: hasher, cache: cache}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, upd UserUpdate) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if upd.Username != "" && upd.Username != user.Username {
		other, err := s.users.FindByUsername(ctx, upd.Username)
		if err == nil && other != nil && other.ID != id {
			return nil, apperrors.ErrUsernameTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check username: %w", err)
		}
		user.Username = upd.Username
	}

	user.Nom = upd.Nom
	user.Prenom = upd.Prenom
	user.Age = upd.Age
	user.Numtel = upd.Numtel
	user.PhotoProfil = upd.PhotoProfil
	user.Securise = upd.Securise

	if upd.MotDePasse != "" {
		hash, err := s.hasher.Hash(upd.MotDePasse)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return nil
}
