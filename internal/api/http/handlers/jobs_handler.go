package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/modules"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

const (
	kindJob         = "job"
	kindApplication = "job_application"
)

// JobsHandler exposes the placeholder job-postings module.
type JobsHandler struct {
	store *modules.Store
}

// NewJobsHandler constructs handler.
func NewJobsHandler(store *modules.Store) *JobsHandler {
	return &JobsHandler{store: store}
}

// Create handles POST /api/v1/jobs (admin or manager).
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	fields, err := recordFields(c)
	if err != nil {
		return err
	}
	if _, ok := fields["active"]; !ok {
		fields["active"] = true
	}
	record := h.store.Put(kindJob, claims.UserID, fields)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": record})
}

// List handles GET /api/v1/jobs. Anonymous callers only see active
// postings; authenticated callers see everything.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	_, authenticated := auth.ClaimsFromContext(c)
	filter := func(r *modules.Record) bool {
		if authenticated {
			return true
		}
		active, ok := r.Fields["active"].(bool)
		return ok && active
	}
	records := h.store.List(kindJob, filter, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// Get handles GET /api/v1/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	record, ok := h.store.Get(c.Params("id"))
	if !ok || record.Kind != kindJob {
		return apperrors.NewNotFound("Job", nil)
	}
	return c.JSON(fiber.Map{"success": true, "data": record})
}

// Apply handles POST /api/v1/jobs/:id/apply (authenticated).
func (h *JobsHandler) Apply(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if _, found := h.store.Get(c.Params("id")); !found {
		return apperrors.NewNotFound("Job", nil)
	}
	fields, err := recordFields(c)
	if err != nil {
		return err
	}
	fields["jobId"] = c.Params("id")
	record := h.store.Put(kindApplication, claims.UserID, fields)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": record})
}

// recordFields parses an arbitrary JSON object body for the glue modules.
func recordFields(c *fiber.Ctx) (map[string]any, error) {
	fields := make(map[string]any)
	if len(c.Body()) == 0 {
		return fields, nil
	}
	if err := c.BodyParser(&fields); err != nil {
		return nil, apperrors.NewValidationError("Invalid request body", nil)
	}
	return fields, nil
}
