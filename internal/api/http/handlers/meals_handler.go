package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quickplate-service/internal/api/dto"
	"github.com/spec-kit/quickplate-service/internal/service"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

// MealsHandler exposes the menu catalog.
type MealsHandler struct {
	catalog *service.CatalogService
}

// NewMealsHandler constructs handler.
func NewMealsHandler(catalog *service.CatalogService) *MealsHandler {
	return &MealsHandler{catalog: catalog}
}

// List handles GET /meals with an optional category query parameter.
func (h *MealsHandler) List(c *fiber.Ctx) error {
	meals, err := h.catalog.ListMeals(c.Context(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMealListResponse(meals)})
}

// Get handles GET /meals/:id.
func (h *MealsHandler) Get(c *fiber.Ctx) error {
	meal, err := h.catalog.GetMeal(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMealResponse(meal)})
}

// SetAvailability handles PATCH /meals/:id/availability.
func (h *MealsHandler) SetAvailability(c *fiber.Ctx) error {
	var req dto.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Available == nil {
		return apperrors.NewValidationError("available is required", nil)
	}

	meal, err := h.catalog.SetAvailability(c.Context(), c.Params("id"), *req.Available)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMealResponse(meal)})
}
