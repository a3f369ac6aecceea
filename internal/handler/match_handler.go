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

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

func (h *MatchHandler) RegisterRoutes(api, trips *echo.Group) {
	trips.POST("/:id/matches", h.CreateMatchOffer)

	matches := api.Group("/matches")
	matches.GET("", h.GetMyMatches)
	matches.GET("/pending-count", h.GetPendingCount)
	matches.GET("/:id", h.GetMatchDetails)
	matches.POST("/:id/accept", h.AcceptMatch)
	matches.POST("/:id/reject", h.RejectMatch)
	matches.POST("/:id/cancel", h.CancelMatch)
}

// CreateMatchOffer is the trip creator's counter-swipe on a candidate.
func (h *MatchHandler) CreateMatchOffer(c echo.Context) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.MatchOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.svc.CreateMatchOffer(c.Request().Context(), middleware.UserID(c), tripID, req.UserID, req.Direction)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.OfferResponse{Matched: result.Matched}
	if result.Matched {
		m := dto.ToMatchResponse(result.Match)
		resp.Match = &m
		resp.ChatRoomID = &result.ChatRoomID
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *MatchHandler) AcceptMatch(c echo.Context) error {
	matchID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AcceptMatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	match, err := h.svc.AcceptMatch(c.Request().Context(), middleware.UserID(c), matchID, req.SeatsRequested)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToMatchResponse(match))
}

func (h *MatchHandler) RejectMatch(c echo.Context) error {
	matchID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReasonRequest
	_ = c.Bind(&req) // body is optional

	if err := h.svc.RejectMatch(c.Request().Context(), middleware.UserID(c), matchID, req.Reason); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "match rejected"})
}

func (h *MatchHandler) CancelMatch(c echo.Context) error {
	matchID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReasonRequest
	_ = c.Bind(&req) // body is optional

	match, err := h.svc.CancelMatch(c.Request().Context(), middleware.UserID(c), matchID, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToMatchResponse(match))
}

func (h *MatchHandler) GetMyMatches(c echo.Context) error {
	f := repository.MatchFilter{Role: repository.MatchRole(c.QueryParam("role"))}
	if s := c.QueryParam("status"); s != "" && s != "all" {
		status := models.MatchStatus(s)
		f.Status = &status
	}
	f.Page, f.Limit = parsePagination(c)

	matches, total, err := h.svc.GetMyMatches(c.Request().Context(), middleware.UserID(c), f)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.MatchListResponse{
		Matches:    make([]dto.MatchResponse, len(matches)),
		Pagination: dto.NewPagination(total, f.Page, f.Limit),
	}
	for i := range matches {
		resp.Matches[i] = dto.ToMatchResponse(&matches[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MatchHandler) GetMatchDetails(c echo.Context) error {
	matchID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	match, room, err := h.svc.GetMatchDetails(c.Request().Context(), middleware.UserID(c), matchID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.ToMatchResponse(match)
	if room != nil {
		resp.ChatRoomID = &room.ID
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MatchHandler) GetPendingCount(c echo.Context) error {
	n, err := h.svc.GetPendingCount(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"pending": n})
}
