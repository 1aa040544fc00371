package handlers

import (
	"time"

	"lendflow-los/internal/config"
	"lendflow-los/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health and root endpoints
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Root handles the root endpoint
// @Summary API root
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "LendFlow LOS API", fiber.Map{
		"name":    "lendflow-los",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
	})
}

// Check handles the health check endpoint
// @Summary Health check
// @Description Service liveness plus database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := config.HealthCheck(); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Service Unavailable", "Database is unreachable")
	}

	return response.Success(c, "Service is healthy", fiber.Map{
		"status":   "ok",
		"database": "up",
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
	})
}
