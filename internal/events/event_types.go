package events

import (
	"time"

	"github.com/spec-kit/quickplate-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventOfferRedeemed      EventType = "offer_redeemed"
)

// Event represents a domain event emitted by services. SubjectID is the id of
// the aggregate the event concerns (user, order or offer).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	SapID string `json:"sap_id"`
	Name  string `json:"name"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	UserID       string  `json:"user_id"`
	ExternalKey  string  `json:"external_key"`
	Total        float64 `json:"total"`
	PointsUsed   int     `json:"points_used"`
	PointsEarned int     `json:"points_earned"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// OfferRedeemedPayload payload.
type OfferRedeemedPayload struct {
	UserID          string  `json:"user_id"`
	OfferTitle      string  `json:"offer_title"`
	PointsSpent     int     `json:"points_spent"`
	DiscountAmount  float64 `json:"discount_amount"`
	RemainingPoints int     `json:"remaining_points"`
}
