package handler

import (
	"net/http"

	"github.com/example/tripmatch/internal/dto"
	"github.com/example/tripmatch/internal/middleware"
	"github.com/example/tripmatch/internal/models"
	"github.com/example/tripmatch/internal/repository"
	"github.com/example/tripmatch/internal/service"
	"github.com/labstack/echo/v4"
)

type SwipeHandler struct {
	svc service.SwipeService
}

func NewSwipeHandler(svc service.SwipeService) *SwipeHandler {
	return &SwipeHandler{svc: svc}
}

func (h *SwipeHandler) RegisterRoutes(api, trips *echo.Group) {
	trips.POST("/:id/swipes", h.RecordSwipe)
	trips.GET("/:id/swipes", h.GetSwipesOnTrip)
	api.GET("/swipes", h.GetMySwipes)
}

func (h *SwipeHandler) RecordSwipe(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.SwipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	swipe, trip, err := h.svc.RecordSwipe(c.Request().Context(), tripID, middleware.UserID(c), req.Direction, req.IntroMessage)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"swipe": dto.ToSwipeResponse(swipe),
		"trip": map[string]any{
			"id":              trip.ID,
			"type":            trip.Type,
			"available_seats": trip.AvailableSeats,
		},
	})
}

func (h *SwipeHandler) GetSwipesOnTrip(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	f := swipeFilterFromQuery(c)
	swipes, total, err := h.svc.GetSwipesOnTrip(c.Request().Context(), middleware.UserID(c), tripID, f)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, swipeList(swipes, total, f))
}

func (h *SwipeHandler) GetMySwipes(c echo.Context) error {
	f := swipeFilterFromQuery(c)
	swipes, total, err := h.svc.GetMySwipes(c.Request().Context(), middleware.UserID(c), f)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, swipeList(swipes, total, f))
}

func swipeFilterFromQuery(c echo.Context) repository.SwipeFilter {
	var f repository.SwipeFilter
	if d := c.QueryParam("direction"); d != "" && d != "all" {
		dir := models.SwipeDirection(d)
		if dir.Valid() {
			f.Direction = &dir
		}
	}
	f.ExcludeMatched = c.QueryParam("exclude_matched") == "true"
	f.Page, f.Limit = parsePagination(c)
	return f
}

func swipeList(swipes []models.Swipe, total int64, f repository.SwipeFilter) dto.SwipeListResponse {
	resp := dto.SwipeListResponse{
		Swipes:     make([]dto.SwipeResponse, len(swipes)),
		Pagination: dto.NewPagination(total, f.Page, f.Limit),
	}
	for i := range swipes {
		resp.Swipes[i] = dto.ToSwipeResponse(&swipes[i])
	}
	return resp
}
