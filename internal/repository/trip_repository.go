package repository

import (
	"context"

	"gorm.io/gorm"

	"covoiturage/internal/model"
)

// TripRepository defines persistence operations for trips and their passenger
// registrations.
type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	FindByID(ctx context.Context, id uint) (*model.Trip, error)
	List(ctx context.Context) ([]model.Trip, error)
	ListByDriver(ctx context.Context, driverID uint) ([]model.Trip, error)
	ListByPassenger(ctx context.Context, passengerID uint) ([]model.Trip, error)
	Update(ctx context.Context, trip *model.Trip) error
	Delete(ctx context.Context, id uint) error
	AddPassenger(ctx context.Context, tripID, passengerID uint) error
	RemovePassenger(ctx context.Context, tripID, passengerID uint) error
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository builds a GORM-backed repository.
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uint) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) List(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) ListByDriver(ctx context.Context, driverID uint) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).Where("conducteur = ?", driverID).Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) ListByPassenger(ctx context.Context, passengerID uint) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN estpassager ON trajet.idtrajet = estpassager.trajet").
		Where("estpassager.passager = ?", passengerID).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

// Delete removes the trip and its passenger registrations in one transaction.
func (r *tripRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trajet = ?", id).Delete(&model.TripPassenger{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Trip{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddPassenger registers a passenger on a trip. A registration that already
// exists is reported as gorm.ErrDuplicatedKey; the composite primary key on
// estpassager backs the check under concurrent inserts.
func (r *tripRepository) AddPassenger(ctx context.Context, tripID, passengerID uint) error {
	var existing model.TripPassenger
	err := r.db.WithContext(ctx).
		Where("trajet = ? AND passager = ?", tripID, passengerID).
		First(&existing).Error
	if err == nil {
		return gorm.ErrDuplicatedKey
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(&model.TripPassenger{TripID: tripID, PassengerID: passengerID}).Error
}

func (r *tripRepository) RemovePassenger(ctx context.Context, tripID, passengerID uint) error {
	res := r.db.WithContext(ctx).
		Where("trajet = ? AND passager = ?", tripID, passengerID).
		Delete(&model.TripPassenger{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
