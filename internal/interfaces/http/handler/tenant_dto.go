package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
)

// CreateTenantRequest represents the create tenant request payload
type CreateTenantRequest struct {
	Name   string `json:"name" binding:"required,max=200"`
	Slug   string `json:"slug" binding:"required,max=100"`
	PlanID string `json:"plan_id" binding:"required,uuid"`
	Notes  string `json:"notes" binding:"omitempty,max=2000"`
}

// UpdateTenantStatusRequest represents the status transition payload
type UpdateTenantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended inactive"`
}

// SetTenantProductRequest activates or deactivates a product for a tenant
type SetTenantProductRequest struct {
	IsActive bool    `json:"is_active"`
	Config   *string `json:"config"`
}

// TenantResponse represents a tenant in responses
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	PlanID    uuid.UUID `json:"plan_id"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TenantStatsResponse summarizes activity within a tenant
type TenantStatsResponse struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
}

// TenantProductsResponse pairs a tenant with its resolved entitlements
type TenantProductsResponse struct {
	Tenant   TenantResponse        `json:"tenant"`
	Products []EntitlementResponse `json:"products"`
}

// SlugAvailabilityResponse reports whether a slug can still be claimed
type SlugAvailabilityResponse struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}

func tenantResponseFrom(tenant *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Slug:      tenant.Slug,
		Status:    string(tenant.Status),
		PlanID:    tenant.PlanID,
		Notes:     tenant.Notes,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}

func tenantResponsesFrom(tenants []*identity.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i, tenant := range tenants {
		responses[i] = tenantResponseFrom(tenant)
	}
	return responses
}
