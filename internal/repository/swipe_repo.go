package repository

import (
	"context"

	"github.com/example/tripmatch/internal/models"
	"gorm.io/gorm"
)

type SwipeFilter struct {
	Direction      *models.SwipeDirection
	ExcludeMatched bool
	Page           int
	Limit          int
}

type SwipeRepository interface {
	// Create relies on the (trip_id, user_id) unique index; a duplicate
	// surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, swipe *models.Swipe) error
	FindByTripAndUser(ctx context.Context, tripID uint, userID string) (*models.Swipe, error)
	ListByTrip(ctx context.Context, tripID uint, f SwipeFilter) ([]models.Swipe, int64, error)
	ListByUser(ctx context.Context, userID string, f SwipeFilter) ([]models.Swipe, int64, error)
}

type swipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *models.Swipe) error {
	return r.db.WithContext(ctx).Create(swipe).Error
}

func (r *swipeRepository) FindByTripAndUser(ctx context.Context, tripID uint, userID string) (*models.Swipe, error) {
	var swipe models.Swipe
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		First(&swipe).Error
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) ListByTrip(ctx context.Context, tripID uint, f SwipeFilter) ([]models.Swipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Swipe{}).Where("trip_id = ?", tripID)
	if f.Direction != nil {
		q = q.Where("direction = ?", *f.Direction)
	} else {
		// Creator view defaults to interested candidates only.
		q = q.Where("direction IN ?", []models.SwipeDirection{models.SwipeRight, models.SwipeSuper})
	}
	if f.ExcludeMatched {
		q = q.Where("user_id NOT IN (?)",
			r.db.Model(&models.Match{}).Select("matched_user_id").Where("trip_id = ?", tripID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var swipes []models.Swipe
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&swipes).Error
	return swipes, total, err
}

func (r *swipeRepository) ListByUser(ctx context.Context, userID string, f SwipeFilter) ([]models.Swipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Swipe{}).Where("user_id = ?", userID)
	if f.Direction != nil {
		q = q.Where("direction = ?", *f.Direction)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var swipes []models.Swipe
	err := q.Preload("Trip").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&swipes).Error
	return swipes, total, err
}
