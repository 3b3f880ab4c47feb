package handler

import (
	"time"

	"github.com/google/uuid"
	appidentity "github.com/portal/backend/internal/application/identity"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	TenantSlug string `json:"tenantSlug"`
}

// AuthUserResponse represents the authenticated user in responses
type AuthUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse represents the login response payload.
// The token is echoed in the body for callers that cannot read
// the HTTP-only session cookie.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      AuthUserResponse `json:"user"`
}

// LogoutResponse represents the logout response payload
type LogoutResponse struct {
	Message string `json:"message"`
}

func authUserResponseFrom(user appidentity.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
	}
}
