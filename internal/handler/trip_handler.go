package handler

import (
	"net/http"
	"strconv"

	"github.com/example/tripmatch/internal/dto"
	"github.com/example/tripmatch/internal/middleware"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/service"
	"github.com/labstack/echo/v4"
)

type TripHandler struct {
	svc service.TripService
}

func NewTripHandler(svc service.TripService) *TripHandler {
	return &TripHandler{svc: svc}
}

func (h *TripHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTrip)
	g.GET("/nearby", h.NearbyTrips)
	g.GET("/:id", h.GetTrip)
	g.POST("/:id/start", h.StartTrip)
	g.POST("/:id/complete", h.CompleteTrip)
	g.POST("/:id/cancel", h.CancelTrip)
}

func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req dto.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	trip := &models.Trip{
		CreatedBy:       middleware.UserID(c),
		Type:            req.Type,
		OriginCity:      req.OriginCity,
		OriginLat:       req.OriginLat,
		OriginLng:       req.OriginLng,
		DestinationCity: req.DestinationCity,
		DestinationLat:  req.DestinationLat,
		DestinationLng:  req.DestinationLng,
		DepartureAt:     req.DepartureAt,
		TotalSeats:      req.TotalSeats,
	}

	if err := h.svc.CreateTrip(c.Request().Context(), trip, req.EstimatedFare); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

func (h *TripHandler) GetTrip(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	trip, err := h.svc.GetTrip(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *TripHandler) NearbyTrips(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err1 != nil || err2 != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lng are required")
	}

	radius := 25.0
	if v := c.QueryParam("radius_km"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r > 0 {
			radius = r
		}
	}
	page, limit := parsePagination(c)

	trips, err := h.svc.NearbyTrips(c.Request().Context(), middleware.UserID(c), lat, lng, radius, page, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"trips": trips})
}

func (h *TripHandler) StartTrip(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	trip, err := h.svc.StartTrip(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *TripHandler) CompleteTrip(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	trip, err := h.svc.CompleteTrip(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

func (h *TripHandler) CancelTrip(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReasonRequest
	_ = c.Bind(&req) // body is optional

	if err := h.svc.CancelTrip(c.Request().Context(), middleware.UserID(c), id, req.Reason); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "trip cancelled"})
}

func parseID(c echo.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+param)
	}
	return uint(id), nil
}

func parsePagination(c echo.Context) (page, limit int) {
	page, limit = 1, 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
