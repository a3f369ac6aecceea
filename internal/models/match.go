package models

import "time"

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchAccepted  MatchStatus = "accepted"
	MatchRejected  MatchStatus = "rejected"
	MatchCancelled MatchStatus = "cancelled"
)

// matchTransitions: pending → accepted|rejected, accepted → cancelled.
// rejected and cancelled are terminal.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchPending:   {MatchAccepted, MatchRejected},
	MatchAccepted:  {MatchCancelled},
	MatchRejected:  {},
	MatchCancelled: {},
}

func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	for _, t := range matchTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s MatchStatus) Terminal() bool {
	return len(matchTransitions[s]) == 0
}

// Match is the reservation record between a trip creator and a candidate.
// At most one row per (trip_id, matched_user_id), enforced by a unique
// index in pkg/database. A creator's left response is persisted as a
// rejected match so the candidate cannot be offered the trip again.
type Match struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TripID        uint        `gorm:"not null;index" json:"trip_id"`
	TripCreatorID string      `gorm:"not null;index" json:"trip_creator_id"`
	MatchedUserID string      `gorm:"not null;index" json:"matched_user_id"`
	Status        MatchStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	SeatsRequested int      `gorm:"not null;default:1" json:"seats_requested"`
	SeatsConfirmed int      `gorm:"not null;default:0" json:"seats_confirmed"`
	FareShare      *float64 `json:"fare_share,omitempty"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`

	MatchedAt   time.Time  `gorm:"not null" json:"matched_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Trip *Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
