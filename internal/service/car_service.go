package service

import (
	"context"

	"gorm.io/gorm"

	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
	"covoiturage/internal/repository"
)

// CarService exposes car domain operations.
type CarService interface {
	GetCar(ctx context.Context, plate string) (*model.Car, error)
	ListCars(ctx context.Context) ([]model.Car, error)
	CreateCar(ctx context.Context, car *model.Car) (*model.Car, error)
	UpdateCar(ctx context.Context, car *model.Car) (*model.Car, error)
	DeleteCar(ctx context.Context, plate string) error
}

type carService struct {
	cars repository.CarRepository
}

// NewCarService builds a CarService.
func NewCarService(cars repository.CarRepository) CarService {
	return &carService{cars: cars}
}

func (s *carService) GetCar(ctx context.Context, plate string) (*model.Car, error) {
	car, err := s.cars.FindByPlate(ctx, plate)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) ListCars(ctx context.Context) ([]model.Car, error) {
	return s.cars.List(ctx)
}

func (s *carService) CreateCar(ctx context.Context, car *model.Car) (*model.Car, error) {
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) UpdateCar(ctx context.Context, car *model.Car) (*model.Car, error) {
	if err := s.cars.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) DeleteCar(ctx context.Context, plate string) error {
	if err := s.cars.Delete(ctx, plate); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}
