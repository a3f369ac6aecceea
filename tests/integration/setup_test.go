//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/example/tripmatch/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "tripmatch_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	for _, table := range []string{"notifications", "chat_rooms", "matches", "swipes", "trips", "user_blocks", "users"} {
		testDB.Exec("DROP TABLE IF EXISTS " + table)
	}

	if err := testDB.AutoMigrate(
		&models.User{},
		&models.UserBlock{},
		&models.Trip{},
		&models.Swipe{},
		&models.Match{},
		&models.Notification{},
		&models.ChatRoom{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_swipe_once
		ON swipes (trip_id, user_id)
	`)
	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_match_once
		ON matches (trip_id, matched_user_id)
	`)

	code := m.Run()

	for _, table := range []string{"notifications", "chat_rooms", "matches", "swipes", "trips", "user_blocks", "users"} {
		testDB.Exec("DROP TABLE IF EXISTS " + table)
	}

	os.Exit(code)
}

func cleanTables() {
	for _, table := range []string{"notifications", "chat_rooms", "matches", "swipes", "trips", "user_blocks", "users"} {
		testDB.Exec("DELETE FROM " + table)
	}
	testDB.Exec("ALTER SEQUENCE IF EXISTS trips_id_seq RESTART WITH 1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
