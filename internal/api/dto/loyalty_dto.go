package dto

import "github.com/spec-kit/quickplate-service/internal/domain"

// RedeemRequest payload for offer redemption.
type RedeemRequest struct {
	UserID  string `json:"userId"`
	OfferID string `json:"offerId"`
}

// BalanceResponse returns a user's point balance.
type BalanceResponse struct {
	LoyaltyPoints int `json:"loyaltyPoints"`
}

// RedeemResponse returns the redemption outcome.
type RedeemResponse struct {
	RemainingPoints int     `json:"remainingPoints"`
	DiscountAmount  float64 `json:"discountAmount"`
}

// OfferResponse is the wire shape of a loyalty offer.
type OfferResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	PointsRequired int     `json:"pointsRequired"`
	DiscountAmount float64 `json:"discountAmount"`
	Active         bool    `json:"active"`
}

// NewOfferListResponse maps an offer slice.
func NewOfferListResponse(offers []domain.Offer) []OfferResponse {
	result := make([]OfferResponse, 0, len(offers))
	for _, offer := range offers {
		result = append(result, OfferResponse{
			ID:             offer.ID,
			Title:          offer.Title,
			Description:    offer.Description,
			PointsRequired: offer.PointsRequired,
			DiscountAmount: offer.DiscountAmount,
			Active:         offer.Active,
		})
	}
	return result
}
