package models

import "time"

const (
	TrustScoreMin = 1.0
	TrustScoreMax = 5.0
)

// User is the trust-relevant projection of the account entity. Account
// registration and profile management live in another service; this
// service only reads identity and writes the reputation counters.
//
// TrustScore is adjusted by two independent write paths (cancellation
// penalties here, review averages elsewhere); both use relative SQL
// increments so they compose without clobbering each other.
type User struct {
	ID                  string    `gorm:"primaryKey" json:"id"`
	FullName            string    `json:"full_name"`
	TrustScore          float64   `gorm:"not null;default:5" json:"trust_score"`
	TotalTripsCompleted int       `gorm:"not null;default:0" json:"total_trips_completed"`
	TotalTripsCancelled int       `gorm:"not null;default:0" json:"total_trips_cancelled"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UserBlock makes a pair of users invisible to each other's trips.
type UserBlock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID string    `gorm:"not null;index" json:"blocker_id"`
	BlockedID string    `gorm:"not null;index" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}
