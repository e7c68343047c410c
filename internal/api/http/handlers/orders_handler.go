package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quickplate-service/internal/api/dto"
	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/service"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

// OrdersHandler exposes order placement and tracking.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create handles POST /orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || len(req.Items) == 0 || req.Total == 0 {
		return apperrors.NewValidationError("userId, items, total required", nil)
	}

	order, pointsEarned, err := h.orders.Create(c.Context(), service.OrderCreateInput{
		UserID:        req.UserID,
		Items:         req.DomainItems(),
		Total:         req.Total,
		PointsUsed:    req.PointsUsed,
		PickupTime:    req.PickupTime,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"order":        dto.NewOrderResponse(order),
			"pointsEarned": pointsEarned,
		},
	})
}

// ListForUser handles GET /orders/user/:id, newest first.
func (h *OrdersHandler) ListForUser(c *fiber.Ctx) error {
	orders, err := h.orders.ListForUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderListResponse(orders)})
}

// UpdateStatus handles PUT /orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.UpdateStatus(c.Context(), c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}
