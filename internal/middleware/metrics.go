package middleware

import (
	"strconv"

	"github.com/example/tripmatch/internal/observability"
	"github.com/labstack/echo/v4"
)

// Metrics counts requests by method, route template and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			observability.HTTPRequestsTotal.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).
				Inc()
			return err
		}
	}
}
