package repository

import (
	"context"

	"github.com/example/tripmatch/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)

	// ApplyCancellation burns the penalty into the trust score and bumps
	// the cancellation counter. Relative increments only, so the
	// review-driven recalculation can write the same columns without the
	// two paths clobbering each other. The score never drops below the
	// floor.
	ApplyCancellation(ctx context.Context, tx *gorm.DB, userID string, penalty float64) error

	IncrementTripsCompleted(ctx context.Context, tx *gorm.DB, userIDs []string) error
	EitherBlocked(ctx context.Context, userA, userB string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ApplyCancellation(ctx context.Context, tx *gorm.DB, userID string, penalty float64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"trust_score":           gorm.Expr("GREATEST(?, trust_score - ?)", models.TrustScoreMin, penalty),
			"total_trips_cancelled": gorm.Expr("total_trips_cancelled + 1"),
		}).Error
}

func (r *userRepository) IncrementTripsCompleted(ctx context.Context, tx *gorm.DB, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN ?", userIDs).
		UpdateColumn("total_trips_completed", gorm.Expr("total_trips_completed + 1")).Error
}

// EitherBlocked reports whether either user has blocked the other.
func (r *userRepository) EitherBlocked(ctx context.Context, userA, userB string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}
