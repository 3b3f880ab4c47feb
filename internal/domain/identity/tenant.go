package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended" // Suspended due to payment/violation issues
	TenantStatusInactive  TenantStatus = "inactive"
)

// Tenant represents a customer organization in the multi-tenant system
// It is the aggregate root for tenant-related operations
type Tenant struct {
	shared.BaseAggregateRoot
	Name   string
	Slug   string // Stable external identifier, immutable once assigned
	Status TenantStatus
	PlanID uuid.UUID
	Notes  string
}

// NewTenant creates a new tenant with required fields
func NewTenant(name, slug string, planID uuid.UUID) (*Tenant, error) {
	if err := validateTenantName(name); err != nil {
		return nil, err
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN_ID", "Plan ID cannot be empty")
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(strings.TrimSpace(slug)),
		Status:            TenantStatusActive,
		PlanID:            planID,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Valid reports whether the status is a known value
func (s TenantStatus) Valid() bool {
	switch s {
	case TenantStatusActive, TenantStatusSuspended, TenantStatusInactive:
		return true
	}
	return false
}

// Rename updates the tenant's display name; the slug never changes
func (t *Tenant) Rename(name string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}

	t.Name = name
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetStatus transitions the tenant to the given status
func (t *Tenant) SetStatus(status TenantStatus) error {
	if !status.Valid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown tenant status")
	}
	if t.Status == status {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already in this status")
	}

	oldStatus := t.Status
	t.Status = status
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, status))

	return nil
}

// ChangePlan moves the tenant to a different plan
func (t *Tenant) ChangePlan(planID uuid.UUID) error {
	if planID == uuid.Nil {
		return shared.NewDomainError("INVALID_PLAN_ID", "Plan ID cannot be empty")
	}

	t.PlanID = planID
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetNotes sets the tenant's notes
func (t *Tenant) SetNotes(notes string) {
	t.Notes = notes
	t.Touch()
	t.IncrementVersion()
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Validation functions

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks that a slug is a stable external identifier:
// lowercase alphanumerics separated by single hyphens
func ValidateSlug(slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 100 characters")
	}
	if !slugRegex.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}
