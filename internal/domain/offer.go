package domain

// Offer is a loyalty reward redeemable against accumulated points.
// Offers are deactivated rather than deleted.
type Offer struct {
	ID             string
	Title          string
	Description    string
	PointsRequired int
	DiscountAmount float64
	Active         bool
}
