package repository

import (
	"context"

	"github.com/example/tripmatch/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRoomRepository interface {
	// GetOrCreate is idempotent on the unique trip_id index; concurrent
	// callers converge on the same room.
	GetOrCreate(ctx context.Context, tripID uint) (*models.ChatRoom, error)
	FindByTripID(ctx context.Context, tripID uint) (*models.ChatRoom, error)
}

type chatRoomRepository struct {
	db *gorm.DB
}

func NewChatRoomRepository(db *gorm.DB) ChatRoomRepository {
	return &chatRoomRepository{db: db}
}

func (r *chatRoomRepository) GetOrCreate(ctx context.Context, tripID uint) (*models.ChatRoom, error) {
	room := &models.ChatRoom{TripID: tripID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_id"}},
			DoNothing: true,
		}).
		Create(room).Error
	if err != nil {
		return nil, err
	}
	// DoNothing leaves the ID zero when the room already existed.
	if room.ID == 0 {
		return r.FindByTripID(ctx, tripID)
	}
	return room, nil
}

func (r *chatRoomRepository) FindByTripID(ctx context.Context, tripID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}
