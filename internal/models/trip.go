package models

import "time"

type TripStatus string

const (
	TripOpen       TripStatus = "open"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCancelled  TripStatus = "cancelled"
)

type TripType string

const (
	TripCabPool   TripType = "cab_pool"
	TripCompanion TripType = "trip_companion"
)

// tripTransitions is the only place trip lifecycle rules live.
// Terminal states have no outgoing edges.
var tripTransitions = map[TripStatus][]TripStatus{
	TripOpen:       {TripInProgress, TripCancelled},
	TripInProgress: {TripCompleted, TripCancelled},
	TripCompleted:  {},
	TripCancelled:  {},
}

func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, t := range tripTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s TripStatus) Terminal() bool {
	return len(tripTransitions[s]) == 0
}

type Trip struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedBy string     `gorm:"not null;index" json:"created_by"`
	Type      TripType   `gorm:"type:varchar(20);not null" json:"type"`
	Status    TripStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	OriginCity      string  `gorm:"not null" json:"origin_city"`
	OriginLat       float64 `json:"origin_lat"`
	OriginLng       float64 `json:"origin_lng"`
	DestinationCity string  `gorm:"not null" json:"destination_city"`
	DestinationLat  float64 `json:"destination_lat"`
	DestinationLng  float64 `json:"destination_lng"`

	DepartureAt time.Time `gorm:"not null" json:"departure_at"`

	// TotalSeats is fixed at creation; AvailableSeats is mutated only by
	// the capacity allocator (TripRepository.TryReserve / Release).
	TotalSeats     int `gorm:"not null" json:"total_seats"`
	AvailableSeats int `gorm:"not null" json:"available_seats"`

	FarePerSeat *float64 `json:"fare_per_seat,omitempty"`

	// Display-only counter, never used for capacity decisions.
	SwipeCount int `gorm:"not null;default:0" json:"swipe_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
