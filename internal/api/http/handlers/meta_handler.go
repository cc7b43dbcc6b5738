package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/observability"
)

// MetaHandler serves API metadata and the admin metrics snapshot.
type MetaHandler struct {
	name    string
	version string
	env     string
	metrics *observability.Metrics
}

// NewMetaHandler constructs handler.
func NewMetaHandler(name, version, env string, metrics *observability.Metrics) *MetaHandler {
	return &MetaHandler{name: name, version: version, env: env, metrics: metrics}
}

// Root handles GET /.
func (h *MetaHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":     "Welcome to the Wakanda Digital Government Platform API",
		"version":     h.version,
		"environment": h.env,
		"status":      "operational",
	})
}

// Info handles GET /api/v1/info.
func (h *MetaHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title":   h.name,
		"version": h.version,
		"modules": []fiber.Map{
			{"name": "Users", "endpoints": "/api/v1/users"},
			{"name": "Jobs", "endpoints": "/api/v1/jobs"},
			{"name": "Finance", "endpoints": "/api/v1/finance"},
			{"name": "Energy", "endpoints": "/api/v1/energy"},
			{"name": "Carbon", "endpoints": "/api/v1/carbon"},
			{"name": "AI", "endpoints": "/api/v1/ai"},
			{"name": "Policy", "endpoints": "/api/v1/policy"},
		},
	})
}

// Metrics handles GET /api/v1/admin/metrics (admin only).
func (h *MetaHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"requests": requests, "errors": errors},
	})
}
