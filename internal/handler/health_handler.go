package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is an interface for health check ping operations.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a HealthHandler for the database and, when carts live in Redis,
// the cache. cache may be nil.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check pings every dependency.
// Returns 200 {"status":"healthy","checks":{...}} when all are reachable, 503 with
// "unhealthy" and the failing check otherwise.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	if err := h.db.Ping(c.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed: database unreachable")
		checks["database"] = "down"
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			log.Error().Err(err).Msg("health check failed: redis unreachable")
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"checks": checks,
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"checks": checks,
	})
}
