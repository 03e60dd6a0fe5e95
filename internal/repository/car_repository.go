package repository

import (
	"context"

	"gorm.io/gorm"

	"covoiturage/internal/model"
)

// CarRepository defines persistence operations for cars, keyed by license
// plate.
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindByPlate(ctx context.Context, plate string) (*model.Car, error)
	List(ctx context.Context) ([]model.Car, error)
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, plate string) error
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository builds a GORM-backed repository.
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *carRepository) FindByPlate(ctx context.Context, plate string) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Where("plaqueimat = ?", plate).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) List(ctx context.Context) ([]model.Car, error) {
	var cars []model.Car
	if err := r.db.WithContext(ctx).Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *carRepository) Update(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

func (r *carRepository) Delete(ctx context.Context, plate string) error {
	res := r.db.WithContext(ctx).Where("plaqueimat = ?", plate).Delete(&model.Car{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
