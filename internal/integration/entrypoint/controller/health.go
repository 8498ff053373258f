package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency of the API.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthController handles health check endpoints.
type HealthController struct {
	checks []HealthCheck
	clock  adapter.Clock
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(clock adapter.Clock, checks ...HealthCheck) *HealthController {
	return &HealthController{
		checks: checks,
		clock:  clock,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			components[check.Name] = "down"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		components[check.Name] = "up"
	}

	c.JSON(code, HealthResponse{
		Status:     status,
		Components: components,
		Timestamp:  h.clock.Now().UTC().Format(time.RFC3339),
	})
}
