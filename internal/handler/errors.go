package handler

import (
	"errors"
	"net/http"

	"github.com/example/tripmatch/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// toHTTPError is the single mapping from the service error taxonomy to
// HTTP status codes.
func toHTTPError(err error) *echo.HTTPError {
	var insufficient *service.InsufficientSeatsError
	switch {
	case errors.Is(err, service.ErrTripNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNotTripOwner),
		errors.Is(err, service.ErrNotMatchParticipant),
		errors.Is(err, service.ErrOwnTrip),
		errors.Is(err, service.ErrBlocked):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrAlreadySwiped),
		errors.Is(err, service.ErrMatchExists),
		errors.As(err, &insufficient):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrTripNotOpen),
		errors.Is(err, service.ErrTripNotInProgress),
		errors.Is(err, service.ErrTripClosed),
		errors.Is(err, service.ErrNoSeatsAvailable),
		errors.Is(err, service.ErrMatchNotPending),
		errors.Is(err, service.ErrMatchNotAccepted),
		errors.Is(err, service.ErrNoInterest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrInvalidSeats):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
