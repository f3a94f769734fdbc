package middleware

import (
	"time"

	"github.com/deppfellow/registry/internal/metrics"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests that matched no route, keeping the route
// label bounded.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records Prometheus request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Observe labels each request by its route template, not the raw URL.
func (mm *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if mm.metrics == nil {
			return next
		}

		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" || route == "/*" {
				route = unmatchedRoute
			}

			mm.metrics.ObserveHTTPRequest(
				route,
				c.Request().Method,
				responseStatus(err, c.Response().Status),
				time.Since(start),
			)
			return err
		}
	}
}
