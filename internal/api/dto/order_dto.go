package dto

import (
	"time"

	"github.com/spec-kit/quickplate-service/internal/domain"
)

// OrderItemPayload is a single order line on the wire.
type OrderItemPayload struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderCreateRequest payload for order placement.
type OrderCreateRequest struct {
	UserID        string             `json:"userId"`
	Items         []OrderItemPayload `json:"items"`
	Total         float64            `json:"total"`
	PointsUsed    int                `json:"pointsUsed"`
	PickupTime    string             `json:"pickupTime"`
	PaymentMethod string             `json:"paymentMethod"`
}

// StatusUpdateRequest payload for kitchen status changes.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the wire shape of an order.
type OrderResponse struct {
	ID            string             `json:"id"`
	Key           string             `json:"key"`
	UserID        string             `json:"userId"`
	Items         []OrderItemPayload `json:"items"`
	Total         float64            `json:"total"`
	Status        string             `json:"status"`
	PickupTime    string             `json:"pickupTime"`
	PaymentMethod string             `json:"paymentMethod"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// DomainItems converts wire lines to domain lines.
func (r OrderCreateRequest) DomainItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return items
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemPayload{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return OrderResponse{
		ID:            order.ID,
		Key:           order.ExternalKey,
		UserID:        order.UserID,
		Items:         items,
		Total:         order.Total,
		Status:        string(order.Status),
		PickupTime:    order.PickupTime,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}
}

// NewOrderListResponse maps an order slice.
func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, NewOrderResponse(&orders[i]))
	}
	return result
}
