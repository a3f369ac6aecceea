package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/tripmatch/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestErrorHandler_HTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewErrorHandler(discardLogger())
	h(echo.NewHTTPError(http.StatusNotFound, "trip not found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "trip not found", resp.Message)
}

func TestErrorHandler_UnexpectedErrorLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewErrorHandler(logger)
	h(errors.New("connection reset"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "connection reset", resp.Message)

	assert.Contains(t, buf.String(), "unhandled request error")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestErrorHandler_ExpectedErrorNotLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewErrorHandler(logger)
	h(echo.NewHTTPError(http.StatusConflict, "match already exists with this user"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, buf.String(), "client errors are not log noise")
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, c.String(http.StatusOK, "ok"))

	h := NewErrorHandler(discardLogger())
	h(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
