package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/modules"
)

const kindConsumption = "energy_consumption"

// EnergyHandler exposes the placeholder energy module.
type EnergyHandler struct {
	store *modules.Store
}

// NewEnergyHandler constructs handler.
func NewEnergyHandler(store *modules.Store) *EnergyHandler {
	return &EnergyHandler{store: store}
}

// CreateConsumption handles POST /api/v1/energy/consumption (authenticated).
func (h *EnergyHandler) CreateConsumption(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	fields, err := recordFields(c)
	if err != nil {
		return err
	}
	record := h.store.Put(kindConsumption, claims.UserID, fields)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": record})
}

// ListConsumption handles GET /api/v1/energy/consumption (authenticated).
func (h *EnergyHandler) ListConsumption(c *fiber.Ctx) error {
	records := h.store.List(kindConsumption, nil, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// Stats handles GET /api/v1/energy/stats (authenticated).
func (h *EnergyHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"readings": h.store.Count(kindConsumption, nil)},
	})
}
