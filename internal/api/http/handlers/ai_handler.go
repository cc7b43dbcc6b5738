package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/ai"
	"github.com/wakanda-gov/platform/internal/api/dto"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

// AIHandler exposes the OpenRouter pass-through.
type AIHandler struct {
	client *ai.Client
}

// NewAIHandler constructs handler.
func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

// Chat handles POST /api/v1/ai/chat (authenticated).
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	result, err := h.client.Chat(c.UserContext(), req.Model, []ai.Message{
		{Role: "user", Content: req.Message},
	})
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// Models handles GET /api/v1/ai/models (authenticated).
func (h *AIHandler) Models(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.client.Models()})
}
