package auth

import (
	"github.com/marketloop/storefront-backend/internal/users"
	"github.com/marketloop/storefront-backend/pkg/types"
)

// RegisterRequest captures the payload for creating a customer account.
type RegisterRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Address  *types.Address `json:"address,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and user produced by a successful
// registration or login.
type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	User        users.UserSummary `json:"user"`
}
