package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-engine/internal/persistence"
)

const probeTimeout = 2 * time.Second

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. Postgres is the system of record, so losing it
// makes the engine unready; redis only backs the availability cache, which
// falls through to postgres, so a redis outage reports as degraded.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	deps := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := "ready"

	if err := h.redis.Ping(ctx); err != nil {
		deps["redis"] = err.Error()
		status = "degraded"
	}

	if err := h.postgres.Ping(ctx); err != nil {
		deps["postgres"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "primary store unreachable",
				"details": deps,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
	})
}
