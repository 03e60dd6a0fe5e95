package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"covoiturage/internal/auth"
	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "claire.martin",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "claire.martin").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "lucas.durand",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "lucas.durand").Return(&model.User{Username: "lucas.durand"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			hasher := auth.NewPasswordHasher(4)
			tokens := auth.NewTokenService("test-secret", time.Hour)
			svc := NewAuthService(mockRepo, hasher, tokens)

			user := &model.User{Nom: "Martin", Prenom: "Claire", Username: tt.username}
			created, err := svc.Register(context.Background(), user, "motdepasse1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				assert.NotEmpty(t, created.PasswordHash)
				assert.NotEqual(t, "motdepasse1", created.PasswordHash)
				assert.False(t, created.EstAdmin)
				assert.True(t, hasher.Verify("motdepasse1", created.PasswordHash))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)
	digest, _ := hasher.Hash("motdepasse1")

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "claire.martin",
			password: "motdepasse1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "claire.martin").Return(&model.User{
					ID:           1,
					Username:     "claire.martin",
					PasswordHash: digest,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "motdepasse1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "claire.martin",
			password: "motdepasse2",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "claire.martin").Return(&model.User{
					ID:           1,
					Username:     "claire.martin",
					PasswordHash: digest,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := auth.NewTokenService("test-secret", time.Hour)
			svc := NewAuthService(mockRepo, hasher, tokens)

			token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)

				claims, err := tokens.Verify(token)
				assert.NoError(t, err)
				assert.Equal(t, uint(1), claims.UserID)
				assert.Equal(t, "claire.martin", claims.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
