// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pushrelay/config"
	"pushrelay/internal/delivery/api/router/handler"
	"pushrelay/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	TokenHandler *handler.TokenHandler
	AlertHandler *handler.AlertHandler
	Metrics      *metrics.Metrics
	Config       *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	tokenHandler *handler.TokenHandler
	alertHandler *handler.AlertHandler
	metrics      *metrics.Metrics
	config       *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		tokenHandler: params.TokenHandler,
		alertHandler: params.AlertHandler,
		metrics:      params.Metrics,
		config:       params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	apiGroup := e.Group("/api")
	{
		apiGroup.POST("/save-push-token", r.tokenHandler.SavePushToken)
		apiGroup.POST("/influx-alerts", r.alertHandler.InfluxAlert)
	}

	// registration path used by the mobile app
	devicesGroup := e.Group("/devices")
	{
		devicesGroup.POST("/register", r.tokenHandler.RegisterDevice)
	}
}

// RegisterMetricsRoute exposes the Prometheus registry when enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if !r.config.Metrics.Enabled || r.metrics == nil {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
}
