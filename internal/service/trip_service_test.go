package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
)

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) FindByID(ctx context.Context, id uint) (*model.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockTripRepository) List(ctx context.Context) ([]model.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByDriver(ctx context.Context, driverID uint) ([]model.Trip, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByPassenger(ctx context.Context, passengerID uint) ([]model.Trip, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trip), args.Error(1)
}

func (m *MockTripRepository) Update(ctx context.Context, trip *model.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripRepository) AddPassenger(ctx context.Context, tripID, passengerID uint) error {
	args := m.Called(ctx, tripID, passengerID)
	return args.Error(0)
}

func (m *MockTripRepository) RemovePassenger(ctx context.Context, tripID, passengerID uint) error {
	args := m.Called(ctx, tripID, passengerID)
	return args.Error(0)
}

func TestTripService_RegisterPassenger(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockTripRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			setupMock: func(m *MockTripRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.Trip{ID: 3, ConducteurID: 1}, nil)
				m.On("AddPassenger", mock.Anything, uint(3), uint(9)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "trip does not exist",
			setupMock: func(m *MockTripRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name: "already registered",
			setupMock: func(m *MockTripRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.Trip{ID: 3, ConducteurID: 1}, nil)
				m.On("AddPassenger", mock.Anything, uint(3), uint(9)).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAlreadyPassenger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTripRepository)
			tt.setupMock(mockRepo)

			svc := NewTripService(mockRepo)
			err := svc.RegisterPassenger(context.Background(), 3, 9)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTripService_UnregisterPassenger(t *testing.T) {
	t.Run("not registered", func(t *testing.T) {
		mockRepo := new(MockTripRepository)
		mockRepo.On("RemovePassenger", mock.Anything, uint(3), uint(9)).Return(gorm.ErrRecordNotFound)

		svc := NewTripService(mockRepo)
		err := svc.UnregisterPassenger(context.Background(), 3, 9)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("registered", func(t *testing.T) {
		mockRepo := new(MockTripRepository)
		mockRepo.On("RemovePassenger", mock.Anything, uint(3), uint(9)).Return(nil)

		svc := NewTripService(mockRepo)
		assert.NoError(t, svc.UnregisterPassenger(context.Background(), 3, 9))
		mockRepo.AssertExpectations(t)
	})
}

func TestTripService_DeleteTrip(t *testing.T) {
	t.Run("missing trip", func(t *testing.T) {
		mockRepo := new(MockTripRepository)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(gorm.ErrRecordNotFound)

		svc := NewTripService(mockRepo)
		assert.ErrorIs(t, svc.DeleteTrip(context.Background(), 3), apperrors.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}
