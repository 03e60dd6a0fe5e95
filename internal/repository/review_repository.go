package repository

import (
	"context"

	"gorm.io/gorm"

	"covoiturage/internal/model"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	ListBySender(ctx context.Context, senderID uint) ([]model.Review, error)
	ListByRecipient(ctx context.Context, recipientID uint) ([]model.Review, error)
	AverageForRecipient(ctx context.Context, recipientID uint) (float64, int64, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListBySender(ctx context.Context, senderID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Where("envoyeur = ?", senderID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByRecipient(ctx context.Context, recipientID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Where("receveur = ?", recipientID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// AverageForRecipient returns the mean note received by a user and the number
// of reviews it is computed from.
func (r *reviewRepository) AverageForRecipient(ctx context.Context, recipientID uint) (float64, int64, error) {
	var result struct {
		Moyenne float64
		Total   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(note), 0) AS moyenne, COUNT(*) AS total").
		Where("receveur = ?", recipientID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Moyenne, result.Total, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
