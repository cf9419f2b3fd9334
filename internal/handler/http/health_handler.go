package httphandler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/infrastructure/healthcheck"
)

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	registry *healthcheck.Registry
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(registry *healthcheck.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// RegisterRoutes registers the health endpoints on the router root.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Live)
	e.GET("/ready", h.Ready)
}

// Live handles GET /health. It only reports that the process is serving.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": string(healthcheck.StatusUp)})
}

// Ready handles GET /ready. It probes the backing stores and returns 503
// when any of them is unreachable.
func (h *HealthHandler) Ready(c echo.Context) error {
	report := h.registry.Run(c.Request().Context())

	status := http.StatusOK
	if report.Status == healthcheck.StatusDown {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}
