package middleware

import (
	"log/slog"
	"net/http"

	"github.com/example/tripmatch/internal/dto"
	"github.com/labstack/echo/v4"
)

// NewErrorHandler renders every handler error as a dto.ErrorResponse.
// Unexpected failures (5xx) are logged with request context; expected
// ones already carry their status from the handler layer.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("unhandled request error",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		_ = c.JSON(code, dto.ErrorResponse{Message: msg})
	}
}
