package identity

import (
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated       = "UserCreated"
	EventTypeUserStatusChanged = "UserStatusChanged"
)

func eventTenantID(tenantID *uuid.UUID) uuid.UUID {
	if tenantID == nil {
		return uuid.Nil
	}
	return *tenantID
}

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, eventTenantID(user.TenantID)),
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserStatusChangedEvent is published when a user is activated or deactivated
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// NewUserStatusChangedEvent creates a new UserStatusChangedEvent
func NewUserStatusChangedEvent(user *User, isActive bool) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID, eventTenantID(user.TenantID)),
		Email:           user.Email,
		IsActive:        isActive,
	}
}
