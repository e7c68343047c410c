package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quickplate-service/internal/api/dto"
	"github.com/spec-kit/quickplate-service/internal/service"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

// AIHandler exposes the assistant endpoints.
type AIHandler struct {
	assistant *service.AssistantService
}

// NewAIHandler constructs handler.
func NewAIHandler(assistant *service.AssistantService) *AIHandler {
	return &AIHandler{assistant: assistant}
}

// Chat handles POST /ai/chat. Fallback replies still return 200.
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Message == "" {
		return apperrors.NewValidationError("message is required", nil)
	}

	reply := h.assistant.Chat(c.Context(), req.Message, req.History)
	return c.JSON(fiber.Map{"data": dto.ChatResponse{Message: reply}})
}

// Recommendations handles GET /ai/recommendations/:userId.
func (h *AIHandler) Recommendations(c *fiber.Ctx) error {
	recs, err := h.assistant.Recommendations(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RecommendationsResponse{Recommendations: recs}})
}
