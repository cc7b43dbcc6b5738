package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/modules"
)

const kindEmission = "carbon_emission"

// CarbonHandler exposes the placeholder carbon module.
type CarbonHandler struct {
	store *modules.Store
}

// NewCarbonHandler constructs handler.
func NewCarbonHandler(store *modules.Store) *CarbonHandler {
	return &CarbonHandler{store: store}
}

// CreateEmission handles POST /api/v1/carbon/emissions (authenticated).
func (h *CarbonHandler) CreateEmission(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	fields, err := recordFields(c)
	if err != nil {
		return err
	}
	record := h.store.Put(kindEmission, claims.UserID, fields)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": record})
}

// ListEmissions handles GET /api/v1/carbon/emissions (authenticated).
func (h *CarbonHandler) ListEmissions(c *fiber.Ctx) error {
	records := h.store.List(kindEmission, nil, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// Summary handles GET /api/v1/carbon/summary (authenticated).
func (h *CarbonHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"emissions": h.store.Count(kindEmission, nil)},
	})
}
