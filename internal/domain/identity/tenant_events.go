package identity

import (
	"github.com/portal/backend/internal/domain/shared"
)

// Aggregate type constant for Tenant
const AggregateTypeTenant = "Tenant"

// Tenant domain event types
const (
	EventTypeTenantCreated       = "TenantCreated"
	EventTypeTenantStatusChanged = "TenantStatusChanged"
)

// TenantCreatedEvent is published when a tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Name:            tenant.Name,
		Slug:            tenant.Slug,
	}
}

// TenantStatusChangedEvent is published when a tenant's status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	Slug      string       `json:"slug"`
	OldStatus TenantStatus `json:"old_status"`
	NewStatus TenantStatus `json:"new_status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(tenant *Tenant, oldStatus, newStatus TenantStatus) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
