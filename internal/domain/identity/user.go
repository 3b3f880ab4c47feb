package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user
type UserRole string

const (
	// RoleSuperAdmin grants cross-tenant administrative access
	RoleSuperAdmin UserRole = "super_admin"
	// RoleAdmin grants administrative access within the user's tenant
	RoleAdmin UserRole = "admin"
	// RoleMember grants regular access within the user's tenant
	RoleMember UserRole = "member"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an account in the system
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	Name         string
	Role         UserRole
	TenantID     *uuid.UUID // nil for platform-level (cross-tenant) accounts
	IsActive     bool
	LastLoginAt  *time.Time
	LastLoginIP  string
}

// NewUser creates a new user with required fields
func NewUser(email, password, name string, role UserRole, tenantID *uuid.UUID) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		Name:              strings.TrimSpace(name),
		Role:              role,
		TenantID:          tenantID,
		IsActive:          true,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// Valid reports whether the role is a known value
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// SetName sets the user's display name
func (u *User) SetName(name string) error {
	if err := validateUserName(name); err != nil {
		return err
	}

	u.Name = strings.TrimSpace(name)
	u.Touch()
	u.IncrementVersion()

	return nil
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Activate re-enables a deactivated user
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.IsActive = true
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, true))

	return nil
}

// Deactivate disables the user; their sessions stop verifying immediately
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	u.IsActive = false
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, false))

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.UpdatedAt = now
	u.IncrementVersion()
}

// CanLogin returns true if the user may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

// IsSuperAdmin returns true for cross-tenant administrators
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// BelongsToTenant reports whether the user is scoped to the given tenant
func (u *User) BelongsToTenant(tenantID uuid.UUID) bool {
	return u.TenantID != nil && *u.TenantID == tenantID
}

// Validation functions

func validateUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
