package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/portal/backend/internal/domain/identity"
)

// LoginInput contains the credentials for a login attempt
type LoginInput struct {
	Email      string
	Password   string
	TenantSlug string // empty for platform logins
	IP         string
}

// LoginResult contains the session issued for a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
}

// UserInfo is the externally visible view of a user
type UserInfo struct {
	ID          uuid.UUID
	TenantID    *uuid.UUID
	Email       string
	Name        string
	Role        identity.UserRole
	LastLoginAt *time.Time
}

// VerifyResult is the outcome of validating a session token
type VerifyResult struct {
	Session *identity.Session
	User    UserInfo
}

// CreateTenantInput contains the fields needed to provision a tenant
type CreateTenantInput struct {
	Name   string
	Slug   string
	PlanID uuid.UUID
	Notes  string
}

// TenantListInput controls tenant listing and filtering
type TenantListInput struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// TenantStats summarizes activity within a tenant
type TenantStats struct {
	TotalUsers  int64
	ActiveUsers int64 // users with a login in the activity window
}

func userInfoFrom(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
	}
}
