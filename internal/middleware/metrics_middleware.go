package middleware

import (
	"strconv"
	"time"

	"rajwen/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request durations and counts per route template. The route
// template (c.Path) keeps cardinality bounded, raw URLs would not.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()

			return err
		}
	}
}
