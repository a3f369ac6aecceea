package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tripmatch/internal/geo"
	"github.com/example/tripmatch/internal/models"
	"gorm.io/gorm"
)

// ErrSeatAccounting means a release would have pushed available_seats past
// total_seats. That is a logic bug upstream, not a recoverable condition.
var ErrSeatAccounting = errors.New("seat release exceeds total seats")

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	FindByID(ctx context.Context, id uint) (*models.Trip, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Trip, error)

	// TryReserve and Release are the only mutators of available_seats.
	// Both are single conditional UPDATEs; the read-check-write race is
	// resolved by the database, never in application memory.
	TryReserve(ctx context.Context, tx *gorm.DB, tripID uint, seats int) (bool, error)
	Release(ctx context.Context, tx *gorm.DB, tripID uint, seats int) error

	UpdateStatusIf(ctx context.Context, tx *gorm.DB, tripID uint, from, to models.TripStatus) (bool, error)
	CancelAndRestoreSeats(ctx context.Context, tx *gorm.DB, tripID uint) (bool, error)
	IncrementSwipeCount(ctx context.Context, tripID uint) error
	SearchNearby(ctx context.Context, b geo.Bounds, excludeUser string, limit, offset int) ([]models.Trip, error)
	GetDB() *gorm.DB
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindByIDForUpdate acquires a row-level lock on the trip within the given
// transaction.
func (r *tripRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&trip, id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// TryReserve decrements available_seats by seats iff enough remain and the
// trip is still open. Returns false with no mutation otherwise.
func (r *tripRepository) TryReserve(ctx context.Context, tx *gorm.DB, tripID uint, seats int) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ? AND status = ? AND available_seats >= ?", tripID, models.TripOpen, seats).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", seats))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Release returns seats to the trip. The guard against exceeding
// total_seats is a tripwire: hitting it means a double release upstream.
func (r *tripRepository) Release(ctx context.Context, tx *gorm.DB, tripID uint, seats int) error {
	res := tx.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ? AND available_seats + ? <= total_seats", tripID, seats).
		UpdateColumn("available_seats", gorm.Expr("available_seats + ?", seats))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrSeatAccounting
	}
	return nil
}

// UpdateStatusIf performs a guarded lifecycle transition; false means the
// trip was not in the expected state. Edges outside the transition table
// are rejected before any SQL runs.
func (r *tripRepository) UpdateStatusIf(ctx context.Context, tx *gorm.DB, tripID uint, from, to models.TripStatus) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, fmt.Errorf("illegal trip transition %s -> %s", from, to)
	}
	res := tx.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ? AND status = ?", tripID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CancelAndRestoreSeats moves an open or in-progress trip to cancelled and
// resets available_seats to total_seats in the same statement.
func (r *tripRepository) CancelAndRestoreSeats(ctx context.Context, tx *gorm.DB, tripID uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ? AND status IN ?", tripID, []models.TripStatus{models.TripOpen, models.TripInProgress}).
		Updates(map[string]any{
			"status":          models.TripCancelled,
			"available_seats": gorm.Expr("total_seats"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *tripRepository) IncrementSwipeCount(ctx context.Context, tripID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ?", tripID).
		UpdateColumn("swipe_count", gorm.Expr("swipe_count + 1")).Error
}

func (r *tripRepository) SearchNearby(ctx context.Context, b geo.Bounds, excludeUser string, limit, offset int) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.WithContext(ctx).
		Where("status = ?", models.TripOpen).
		Where("created_by <> ?", excludeUser).
		Where("departure_at > NOW()").
		Where("origin_lat BETWEEN ? AND ?", b.MinLat, b.MaxLat).
		Where("origin_lng BETWEEN ? AND ?", b.MinLng, b.MaxLng).
		Limit(limit).
		Offset(offset).
		Find(&trips).Error
	return trips, err
}
