package health

import (
	healthsvc "shoredock-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  healthsvc.DBPinger
}

// JSON returns health data as JSON (service + status, uptime, dependencies).
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.JSON(map[string]interface{}{
		"service":      "shoredock-api",
		"status":       result.Status,
		"uptime_secs":  result.UptimeSecs,
		"dependencies": result.Dependencies,
	})
}
