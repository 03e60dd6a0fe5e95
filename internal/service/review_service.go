package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"covoiturage/internal/cache"
	apperrors "covoiturage/internal/errors"
	"covoiturage/internal/model"
	"covoiturage/internal/repository"
)

const averageCacheTTL = 5 * time.Minute

// RatingAverage is the computed mean note for a user.
type RatingAverage struct {
	Utilisateur uint    `json:"utilisateur"`
	Moyenne     float64 `json:"moyenne"`
}

// ReviewService exposes review domain operations.
type ReviewService interface {
	GetReview(ctx context.Context, id uint) (*model.Review, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	ListBySender(ctx context.Context, senderID uint) ([]model.Review, error)
	ListByRecipient(ctx context.Context, recipientID uint) ([]model.Review, error)
	AverageForRecipient(ctx context.Context, recipientID uint) (*RatingAverage, error)
	CreateReview(ctx context.Context, review *model.Review) (*model.Review, error)
	UpdateReview(ctx context.Context, review *model.Review) (*model.Review, error)
	DeleteReview(ctx context.Context, id uint) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	cache   *cache.Client
}

// NewReviewService builds a ReviewService with repository and cache.
func NewReviewService(reviews repository.ReviewRepository, cache *cache.Client) ReviewService {
	return &reviewService{reviews: reviews, cache: cache}
}

func averageCacheKey(recipientID uint) string {
	return fmt.Sprintf("avis:moyenne:%d", recipientID)
}

func (s *reviewService) GetReview(ctx context.Context, id uint) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	return s.reviews.List(ctx)
}

func (s *reviewService) ListBySender(ctx context.Context, senderID uint) ([]model.Review, error) {
	reviews, err := s.reviews.ListBySender(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return reviews, nil
}

func (s *reviewService) ListByRecipient(ctx context.Context, recipientID uint) ([]model.Review, error) {
	reviews, err := s.reviews.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return reviews, nil
}

// AverageForRecipient returns the mean note received by a user, rounded to
// two decimals. A user without reviews maps to not-found.
func (s *reviewService) AverageForRecipient(ctx context.Context, recipientID uint) (*RatingAverage, error) {
	var cached RatingAverage
	if s.cache.GetJSON(ctx, averageCacheKey(recipientID), &cached) {
		return &cached, nil
	}

	avg, total, err := s.reviews.AverageForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, apperrors.ErrNotFound
	}

	result := &RatingAverage{
		Utilisateur: recipientID,
		Moyenne:     math.Round(avg*100) / 100,
	}
	s.cache.SetJSON(ctx, averageCacheKey(recipientID), result, averageCacheTTL)
	return result, nil
}

func (s *reviewService) CreateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, averageCacheKey(review.ReceveurID))
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, averageCacheKey(review.ReceveurID))
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id uint) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, averageCacheKey(review.ReceveurID))
	return nil
}
