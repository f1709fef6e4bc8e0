// Package handler contains the echo handlers of the API.
package handler

import (
	"net/http"

	"pushrelay/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

const rootMessage = "Push relay is running."

// Root handles GET /
func Root(c echo.Context) error {
	return response.Message(c, rootMessage)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
