package database

import (
	"log"

	"github.com/example/tripmatch/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserBlock{},
		&models.Trip{},
		&models.Swipe{},
		&models.Match{},
		&models.Notification{},
		&models.ChatRoom{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One swipe per (trip, candidate): the ledger is append-only and the
	// database, not application code, rejects concurrent duplicates.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_swipe_once
		ON swipes (trip_id, user_id)
	`)

	// One match per (trip, candidate), regardless of status.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_match_once
		ON matches (trip_id, matched_user_id)
	`)

	return db
}
