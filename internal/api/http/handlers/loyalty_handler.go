package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quickplate-service/internal/api/dto"
	"github.com/spec-kit/quickplate-service/internal/service"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

// LoyaltyHandler exposes point balances and offers.
type LoyaltyHandler struct {
	loyalty *service.LoyaltyService
}

// NewLoyaltyHandler constructs handler.
func NewLoyaltyHandler(loyalty *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyalty: loyalty}
}

// Balance handles GET /loyalty/:userId.
func (h *LoyaltyHandler) Balance(c *fiber.Ctx) error {
	points, err := h.loyalty.Balance(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BalanceResponse{LoyaltyPoints: points}})
}

// ListOffers handles GET /loyalty/offers.
func (h *LoyaltyHandler) ListOffers(c *fiber.Ctx) error {
	offers, err := h.loyalty.ListOffers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOfferListResponse(offers)})
}

// Redeem handles POST /loyalty/redeem.
func (h *LoyaltyHandler) Redeem(c *fiber.Ctx) error {
	var req dto.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.OfferID == "" {
		return apperrors.NewValidationError("userId and offerId required", nil)
	}

	remaining, discount, err := h.loyalty.RedeemOffer(c.Context(), req.UserID, req.OfferID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RedeemResponse{
		RemainingPoints: remaining,
		DiscountAmount:  discount,
	}})
}
