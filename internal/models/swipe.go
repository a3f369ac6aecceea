package models

import "time"

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
	SwipeSuper SwipeDirection = "super"
)

func (d SwipeDirection) Valid() bool {
	switch d {
	case SwipeLeft, SwipeRight, SwipeSuper:
		return true
	}
	return false
}

// Positive reports whether the swipe expresses interest in a seat.
// Left swipes carry no reservation semantics.
func (d SwipeDirection) Positive() bool {
	return d == SwipeRight || d == SwipeSuper
}

// Swipe is append-only: one row per (trip, user), never mutated.
// The unique index on (trip_id, user_id) is created in pkg/database.
type Swipe struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TripID       uint           `gorm:"not null;index" json:"trip_id"`
	UserID       string         `gorm:"not null" json:"user_id"`
	Direction    SwipeDirection `gorm:"type:varchar(10);not null" json:"direction"`
	IntroMessage *string        `json:"intro_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`

	Trip *Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
