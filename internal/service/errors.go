package service

import (
	"errors"
	"fmt"
)

// Expected, recoverable-by-caller conditions. Handlers map them to HTTP
// status codes; nothing here is retried automatically.
var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrMatchNotFound = errors.New("match not found")

	ErrNotTripOwner        = errors.New("only the trip creator can perform this action")
	ErrNotMatchParticipant = errors.New("you are not part of this match")
	ErrOwnTrip             = errors.New("cannot swipe on your own trip")
	ErrBlocked             = errors.New("you cannot interact with this trip")

	ErrAlreadySwiped = errors.New("you have already swiped on this trip")
	ErrMatchExists   = errors.New("match already exists with this user")
	ErrNoInterest    = errors.New("user has not expressed interest in this trip")

	ErrTripNotOpen       = errors.New("trip is no longer accepting participants")
	ErrTripNotInProgress = errors.New("trip must be in progress to complete")
	ErrTripClosed        = errors.New("trip is already completed or cancelled")
	ErrNoSeatsAvailable  = errors.New("trip has no available seats")
	ErrMatchNotPending   = errors.New("match is no longer pending")
	ErrMatchNotAccepted  = errors.New("can only cancel accepted matches")

	ErrInvalidDirection = errors.New("invalid swipe direction")
	ErrInvalidSeats     = errors.New("seats must be between 1 and 8")
)

// InsufficientSeatsError tells the caller how many seats remain so the
// request can be retried with a smaller ask.
type InsufficientSeatsError struct {
	Available int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("only %d seat(s) available", e.Available)
}
