package middleware

import (
	"net/http"
	"time"

	"pushrelay/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counts and latencies per route
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handle observes the request after the handler and error handler have run.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		// status is final only once the error has been rendered
		if err != nil && !c.Response().Committed {
			c.Error(err)
			err = nil
		}

		route := c.Path()
		// unknown paths share one label
		if route == "" || c.Response().Status == http.StatusNotFound {
			route = unmatchedRoute
		}

		m.metrics.ObserveHTTPRequest(route, c.Request().Method, c.Response().Status, time.Since(start))

		return err
	}
}
