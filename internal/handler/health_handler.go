package handler

import (
	"context"
	"time"

	"mcq-platform/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler checks each named dependency on readiness.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Live godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} handler.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Pings the database and the cache.
// @Tags health
// @Produce json
// @Success 200 {object} handler.HealthResponse
// @Failure 503 {object} handler.HealthResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.deps))}
	for name, dep := range h.deps {
		if err := dep.PingContext(ctx); err != nil {
			logger.Get().Warn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			resp.Status = "unavailable"
			resp.Checks[name] = "down"
			continue
		}
		resp.Checks[name] = "up"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
