package domain

import "time"

// User is the domain model for students ordering through the canteen.
type User struct {
	ID            string
	SapID         string
	Name          string
	Email         string
	Phone         string
	PhotoURL      string
	PasswordHash  string
	LoyaltyPoints int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
