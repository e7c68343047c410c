package domain

import "time"

// OrderStatus enumerates kitchen lifecycle states: Placed -> Preparing ->
// Ready -> Completed. The label set is validated; transition order is left
// to the kitchen.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusCompleted OrderStatus = "Completed"
)

// ValidOrderStatus reports whether the label is one of the defined states.
func ValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPlaced, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

// OrderItem is a single line of an order. Lines are stored embedded in the
// order row rather than as a child table.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the aggregate for a placed canteen order.
type Order struct {
	ID            string
	ExternalKey   string
	UserID        string
	Items         []OrderItem
	Total         float64
	Status        OrderStatus
	PickupTime    string
	PaymentMethod string
	CreatedAt     time.Time
}
