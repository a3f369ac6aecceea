package models

import "time"

type NotificationType string

const (
	NotifySwipeReceived  NotificationType = "swipe_received"
	NotifyMatchOffer     NotificationType = "match_offer"
	NotifyMatchConfirmed NotificationType = "match_confirmed"
	NotifyMatchCancelled NotificationType = "match_cancelled"
	NotifyTripCancelled  NotificationType = "trip_cancelled"
	NotifyReviewReminder NotificationType = "review_reminder"
)

// Notification rows are written by the fanout consumer only; delivery to
// devices is someone else's problem.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    string           `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"not null" json:"message"`
	TripID    *uint            `json:"trip_id,omitempty"`
	MatchID   *uint            `json:"match_id,omitempty"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ChatRoom is provisioned once per trip; get-or-create is idempotent on
// the unique trip_id index.
type ChatRoom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TripID    uint      `gorm:"not null;uniqueIndex" json:"trip_id"`
	CreatedAt time.Time `json:"created_at"`
}
