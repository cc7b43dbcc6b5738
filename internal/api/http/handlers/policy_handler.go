package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/modules"
)

const kindPolicyDocument = "policy_document"

// PolicyHandler exposes the placeholder policy-documents module.
type PolicyHandler struct {
	store *modules.Store
}

// NewPolicyHandler constructs handler.
func NewPolicyHandler(store *modules.Store) *PolicyHandler {
	return &PolicyHandler{store: store}
}

// CreateDocument handles POST /api/v1/policy/documents (admin or manager).
func (h *PolicyHandler) CreateDocument(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	fields, err := recordFields(c)
	if err != nil {
		return err
	}
	record := h.store.Put(kindPolicyDocument, claims.UserID, fields)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": record})
}

// ListDocuments handles GET /api/v1/policy/documents.
func (h *PolicyHandler) ListDocuments(c *fiber.Ctx) error {
	records := h.store.List(kindPolicyDocument, nil, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// SearchDocuments handles GET /api/v1/policy/documents/search. Linear
// substring match over string fields; this module carries no search design.
func (h *PolicyHandler) SearchDocuments(c *fiber.Ctx) error {
	needle := strings.ToLower(c.Query("q"))
	filter := func(r *modules.Record) bool {
		if needle == "" {
			return true
		}
		for _, value := range r.Fields {
			if s, ok := value.(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	}
	records := h.store.List(kindPolicyDocument, filter, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	return c.JSON(fiber.Map{"success": true, "data": records})
}
