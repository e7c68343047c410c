package dto

import (
	"time"

	"github.com/spec-kit/quickplate-service/internal/domain"
)

// LoginRequest payload for login by institution id.
type LoginRequest struct {
	SapID    string `json:"sapId"`
	Password string `json:"password"`
}

// SignupRequest payload for new accounts.
type SignupRequest struct {
	SapID    string `json:"sapId"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ChangePasswordRequest payload for password rotation.
type ChangePasswordRequest struct {
	UserID      string `json:"userId"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ProfileUpdateRequest carries optional profile changes.
type ProfileUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the wire shape of an account.
type UserResponse struct {
	ID            string    `json:"id"`
	SapID         string    `json:"sapId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PhotoURL      string    `json:"photoUrl"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		SapID:         user.SapID,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		PhotoURL:      user.PhotoURL,
		LoyaltyPoints: user.LoyaltyPoints,
		CreatedAt:     user.CreatedAt,
	}
}
