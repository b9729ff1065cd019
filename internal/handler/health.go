// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	jobsEnabled bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(jobsEnabled bool) *HealthHandler {
	return &HealthHandler{jobsEnabled: jobsEnabled}
}

// Check returns the health status of the server.
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"jobs":   h.jobsEnabled,
	})
}
