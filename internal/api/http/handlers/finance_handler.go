package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/modules"
)

const (
	kindBudget      = "budget"
	kindTransaction = "transaction"
)

// FinanceHandler exposes the placeholder finance module.
type FinanceHandler struct {
	store *modules.Store
}

// NewFinanceHandler constructs handler.
func NewFinanceHandler(store *modules.Store) *FinanceHandler {
	return &FinanceHandler{store: store}
}

// CreateBudget handles POST /api/v1/finance/budgets (admin or manager).
func (h *FinanceHandler) CreateBudget(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	fields, err := recordFields(c)
	if err != nil {
		return err
	}
	record := h.store.Put(kindBudget, claims.UserID, fields)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": record})
}

// ListBudgets handles GET /api/v1/finance/budgets (admin or manager).
func (h *FinanceHandler) ListBudgets(c *fiber.Ctx) error {
	records := h.store.List(kindBudget, nil, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// CreateTransaction handles POST /api/v1/finance/transactions (authenticated).
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	fields, err := recordFields(c)
	if err != nil {
		return err
	}
	record := h.store.Put(kindTransaction, claims.UserID, fields)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": record})
}

// Analytics handles GET /api/v1/finance/analytics (admin or manager).
func (h *FinanceHandler) Analytics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"budgets":      h.store.Count(kindBudget, nil),
			"transactions": h.store.Count(kindTransaction, nil),
		},
	})
}
