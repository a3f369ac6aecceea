package dto

import (
	"time"

	"github.com/example/tripmatch/internal/models"
)

type TripResponse struct {
	ID              uint              `json:"id"`
	CreatedBy       string            `json:"created_by"`
	Type            models.TripType   `json:"type"`
	Status          models.TripStatus `json:"status"`
	OriginCity      string            `json:"origin_city"`
	DestinationCity string            `json:"destination_city"`
	DepartureAt     time.Time         `json:"departure_at"`
	TotalSeats      int               `json:"total_seats"`
	AvailableSeats  int               `json:"available_seats"`
	FarePerSeat     *float64          `json:"fare_per_seat,omitempty"`
	SwipeCount      int               `json:"swipe_count"`
	CreatedAt       time.Time         `json:"created_at"`
}

type SwipeResponse struct {
	ID           uint                  `json:"id"`
	TripID       uint                  `json:"trip_id"`
	UserID       string                `json:"user_id"`
	Direction    models.SwipeDirection `json:"direction"`
	IntroMessage *string               `json:"intro_message,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	Trip         *TripResponse         `json:"trip,omitempty"`
}

type MatchResponse struct {
	ID                 uint               `json:"id"`
	TripID             uint               `json:"trip_id"`
	TripCreatorID      string             `json:"trip_creator_id"`
	MatchedUserID      string             `json:"matched_user_id"`
	Status             models.MatchStatus `json:"status"`
	SeatsRequested     int                `json:"seats_requested"`
	SeatsConfirmed     int                `json:"seats_confirmed"`
	FareShare          *float64           `json:"fare_share,omitempty"`
	CancellationReason *string            `json:"cancellation_reason,omitempty"`
	MatchedAt          time.Time          `json:"matched_at"`
	AcceptedAt         *time.Time         `json:"accepted_at,omitempty"`
	RejectedAt         *time.Time         `json:"rejected_at,omitempty"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	ChatRoomID         *uint              `json:"chat_room_id,omitempty"`
	Trip               *TripResponse      `json:"trip,omitempty"`
}

type OfferResponse struct {
	Matched    bool           `json:"matched"`
	Match      *MatchResponse `json:"match,omitempty"`
	ChatRoomID *uint          `json:"chat_room_id,omitempty"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

type SwipeListResponse struct {
	Swipes     []SwipeResponse `json:"swipes"`
	Pagination Pagination      `json:"pagination"`
}

type MatchListResponse struct {
	Matches    []MatchResponse `json:"matches"`
	Pagination Pagination      `json:"pagination"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewPagination(total int64, page, limit int) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

func ToTripResponse(t *models.Trip) TripResponse {
	return TripResponse{
		ID:              t.ID,
		CreatedBy:       t.CreatedBy,
		Type:            t.Type,
		Status:          t.Status,
		OriginCity:      t.OriginCity,
		DestinationCity: t.DestinationCity,
		DepartureAt:     t.DepartureAt,
		TotalSeats:      t.TotalSeats,
		AvailableSeats:  t.AvailableSeats,
		FarePerSeat:     t.FarePerSeat,
		SwipeCount:      t.SwipeCount,
		CreatedAt:       t.CreatedAt,
	}
}

func ToSwipeResponse(s *models.Swipe) SwipeResponse {
	resp := SwipeResponse{
		ID:           s.ID,
		TripID:       s.TripID,
		UserID:       s.UserID,
		Direction:    s.Direction,
		IntroMessage: s.IntroMessage,
		CreatedAt:    s.CreatedAt,
	}
	if s.Trip != nil {
		t := ToTripResponse(s.Trip)
		resp.Trip = &t
	}
	return resp
}

func ToMatchResponse(m *models.Match) MatchResponse {
	resp := MatchResponse{
		ID:                 m.ID,
		TripID:             m.TripID,
		TripCreatorID:      m.TripCreatorID,
		MatchedUserID:      m.MatchedUserID,
		Status:             m.Status,
		SeatsRequested:     m.SeatsRequested,
		SeatsConfirmed:     m.SeatsConfirmed,
		FareShare:          m.FareShare,
		CancellationReason: m.CancellationReason,
		MatchedAt:          m.MatchedAt,
		AcceptedAt:         m.AcceptedAt,
		RejectedAt:         m.RejectedAt,
		CancelledAt:        m.CancelledAt,
	}
	if m.Trip != nil {
		t := ToTripResponse(m.Trip)
		resp.Trip = &t
	}
	return resp
}
