package identity

import (
	"time"

	"github.com/bricksflow/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterInput contains the data needed to open an account
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginInput contains the credentials of a login attempt
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput carries the refresh token to rotate
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

// TokenResponse is the token pair handed to a client
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	TokenResponse
	User UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		LastActiveAt: u.LastActiveAt,
	}
}
