package service

import (
	"context"

	"gorm.io/gorm"

	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
	"covoiturage/internal/repository"
)

// TripService exposes trip and passenger-registration operations.
type TripService interface {
	GetTrip(ctx context.Context, id uint) (*model.Trip, error)
	ListTrips(ctx context.Context) ([]model.Trip, error)
	ListByDriver(ctx context.Context, driverID uint) ([]model.Trip, error)
	ListByPassenger(ctx context.Context, passengerID uint) ([]model.Trip, error)
	CreateTrip(ctx context.Context, trip *model.Trip) (*model.Trip, error)
	UpdateTrip(ctx context.Context, trip *model.Trip) (*model.Trip, error)
	DeleteTrip(ctx context.Context, id uint) error
	RegisterPassenger(ctx context.Context, tripID, passengerID uint) error
	UnregisterPassenger(ctx context.Context, tripID, passengerID uint) error
}

type tripService struct {
	trips repository.TripRepository
}

// NewTripService builds a TripService.
func NewTripService(trips repository.TripRepository) TripService {
	return &tripService{trips: trips}
}

func (s *tripService) GetTrip(ctx context.Context, id uint) (*model.Trip, error) {
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *tripService) ListTrips(ctx context.Context) ([]model.Trip, error) {
	return s.trips.List(ctx)
}

func (s *tripService) ListByDriver(ctx context.Context, driverID uint) ([]model.Trip, error) {
	return s.trips.ListByDriver(ctx, driverID)
}

func (s *tripService) ListByPassenger(ctx context.Context, passengerID uint) ([]model.Trip, error) {
	return s.trips.ListByPassenger(ctx, passengerID)
}

func (s *tripService) CreateTrip(ctx context.Context, trip *model.Trip) (*model.Trip, error) {
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) UpdateTrip(ctx context.Context, trip *model.Trip) (*model.Trip, error) {
	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) DeleteTrip(ctx context.Context, id uint) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

// RegisterPassenger adds a passenger to an existing trip. Registering twice
// on the same trip is a conflict.
func (s *tripService) RegisterPassenger(ctx context.Context, tripID, passengerID uint) error {
	if _, err := s.trips.FindByID(ctx, tripID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := s.trips.AddPassenger(ctx, tripID, passengerID); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return apperrors.ErrAlreadyPassenger
		}
		return err
	}
	return nil
}

func (s *tripService) UnregisterPassenger(ctx context.Context, tripID, passengerID uint) error {
	if err := s.trips.RemovePassenger(ctx, tripID, passengerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}
