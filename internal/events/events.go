// Package events defines the transition events the core emits after a
// state change commits. Notification and chat collaborators consume them
// asynchronously; their failures never roll back the originating
// transaction.
package events

import "time"

type Type string

const (
	SwipeReceived  Type = "swipe.received"
	MatchOffer     Type = "match.offer"
	MatchAccepted  Type = "match.accepted"
	MatchCancelled Type = "match.cancelled"
	TripCancelled  Type = "trip.cancelled"
	TripCompleted  Type = "trip.completed"
)

// Event is the wire record published to the trip-events exchange. The
// routing key is the event type.
type Event struct {
	Type       Type      `json:"type"`
	TripID     uint      `json:"trip_id"`
	MatchID    uint      `json:"match_id,omitempty"`
	ActorID    string    `json:"actor_id"`
	TargetID   string    `json:"target_id,omitempty"`
	Seats      int       `json:"seats,omitempty"`
	Direction  string    `json:"direction,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	TargetIDs  []string  `json:"target_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Emitter delivers events to the fanout. Implementations must be safe
// for concurrent use and must not block the caller on broker failures.
type Emitter interface {
	Emit(e Event)
}
