package dto

import (
	"time"

	"github.com/example/tripmatch/internal/models"
)

type CreateTripRequest struct {
	Type            models.TripType `json:"type" validate:"required,oneof=cab_pool trip_companion"`
	OriginCity      string          `json:"origin_city" validate:"required"`
	OriginLat       float64         `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLng       float64         `json:"origin_lng" validate:"min=-180,max=180"`
	DestinationCity string          `json:"destination_city" validate:"required"`
	DestinationLat  float64         `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLng  float64         `json:"destination_lng" validate:"min=-180,max=180"`
	DepartureAt     time.Time       `json:"departure_at" validate:"required"`
	TotalSeats      int             `json:"total_seats" validate:"required,min=1,max=8"`
	EstimatedFare   *float64        `json:"estimated_fare,omitempty" validate:"omitempty,gt=0"`
}

type SwipeRequest struct {
	Direction    models.SwipeDirection `json:"direction" validate:"required,oneof=left right super"`
	IntroMessage *string               `json:"intro_message,omitempty" validate:"omitempty,max=300"`
}

type MatchOfferRequest struct {
	UserID    string                `json:"user_id" validate:"required"`
	Direction models.SwipeDirection `json:"direction" validate:"required,oneof=left right"`
}

type AcceptMatchRequest struct {
	SeatsRequested int `json:"seats_requested" validate:"required,min=1,max=8"`
}

type ReasonRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=300"`
}
