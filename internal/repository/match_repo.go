package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tripmatch/internal/models"
	"gorm.io/gorm"
)

type MatchRole string

const (
	RoleAny         MatchRole = ""
	RoleCreator     MatchRole = "creator"
	RoleParticipant MatchRole = "participant"
)

type MatchFilter struct {
	Status *models.MatchStatus
	Role   MatchRole
	Page   int
	Limit  int
}

type MatchRepository interface {
	Create(ctx context.Context, tx *gorm.DB, match *models.Match) error
	FindByID(ctx context.Context, id uint) (*models.Match, error)
	FindByTripAndUser(ctx context.Context, tripID uint, userID string) (*models.Match, error)

	// TransitionIf applies extra column writes together with a guarded
	// status change. Zero rows affected means the match was not in the
	// expected state; nothing is mutated. Edges outside the transition
	// table are rejected before any SQL runs.
	TransitionIf(ctx context.Context, tx *gorm.DB, matchID uint, from, to models.MatchStatus, updates map[string]any) (bool, error)

	CancelActiveForTrip(ctx context.Context, tx *gorm.DB, tripID uint, reason string) (int64, error)
	ListAcceptedByTrip(ctx context.Context, tripID uint) ([]models.Match, error)
	ListByUser(ctx context.Context, userID string, f MatchFilter) ([]models.Match, int64, error)
	CountPendingForUser(ctx context.Context, userID string) (int64, error)
	GetDB() *gorm.DB
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *matchRepository) Create(ctx context.Context, tx *gorm.DB, match *models.Match) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(match).Error
}

func (r *matchRepository) FindByID(ctx context.Context, id uint) (*models.Match, error) {
	var match models.Match
	if err := r.db.WithContext(ctx).Preload("Trip").First(&match, id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) FindByTripAndUser(ctx context.Context, tripID uint, userID string) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND matched_user_id = ?", tripID, userID).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) TransitionIf(ctx context.Context, tx *gorm.DB, matchID uint, from, to models.MatchStatus, updates map[string]any) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, fmt.Errorf("illegal match transition %s -> %s", from, to)
	}
	if tx == nil {
		tx = r.db
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to

	res := tx.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ? AND status = ?", matchID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CancelActiveForTrip terminates every pending and accepted match on the
// trip. Used when the creator cancels the whole trip.
func (r *matchRepository) CancelActiveForTrip(ctx context.Context, tx *gorm.DB, tripID uint, reason string) (int64, error) {
	now := time.Now()
	res := tx.WithContext(ctx).
		Model(&models.Match{}).
		Where("trip_id = ? AND status IN ?", tripID,
			[]models.MatchStatus{models.MatchPending, models.MatchAccepted}).
		Updates(map[string]any{
			"status":              models.MatchCancelled,
			"cancelled_at":        now,
			"cancellation_reason": reason,
		})
	return res.RowsAffected, res.Error
}

func (r *matchRepository) ListAcceptedByTrip(ctx context.Context, tripID uint) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND status = ?", tripID, models.MatchAccepted).
		Find(&matches).Error
	return matches, err
}

func (r *matchRepository) ListByUser(ctx context.Context, userID string, f MatchFilter) ([]models.Match, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Match{})
	switch f.Role {
	case RoleCreator:
		q = q.Where("trip_creator_id = ?", userID)
	case RoleParticipant:
		q = q.Where("matched_user_id = ?", userID)
	default:
		q = q.Where("trip_creator_id = ? OR matched_user_id = ?", userID, userID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var matches []models.Match
	err := q.Preload("Trip").
		Order("matched_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&matches).Error
	return matches, total, err
}

func (r *matchRepository) CountPendingForUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("matched_user_id = ? AND status = ?", userID, models.MatchPending).
		Count(&count).Error
	return count, err
}
