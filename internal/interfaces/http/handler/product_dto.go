package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
)

// CreateProductRequest represents the create product request payload
type CreateProductRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Slug          string `json:"slug" binding:"required,max=100"`
	Description   string `json:"description" binding:"omitempty,max=1000"`
	Icon          string `json:"icon" binding:"omitempty,max=100"`
	Color         string `json:"color" binding:"omitempty,max=20"`
	BaseURL       string `json:"baseUrl" binding:"omitempty,max=500"`
	DefaultConfig string `json:"defaultConfig"`
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	Icon          string    `json:"icon,omitempty"`
	Color         string    `json:"color,omitempty"`
	BaseURL       string    `json:"base_url,omitempty"`
	DefaultConfig string    `json:"default_config"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// EntitlementResponse represents a resolved product entitlement
type EntitlementResponse struct {
	Product         ProductResponse `json:"product"`
	HasAccess       bool            `json:"has_access"`
	EffectiveConfig string          `json:"effective_config"`
}

func productResponseFrom(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Slug:          product.Slug,
		Description:   product.Description,
		Icon:          product.Icon,
		Color:         product.Color,
		BaseURL:       product.BaseURL,
		DefaultConfig: product.DefaultConfig,
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
	}
}

func entitlementResponsesFrom(entitlements []*catalog.Entitlement) []EntitlementResponse {
	responses := make([]EntitlementResponse, len(entitlements))
	for i, e := range entitlements {
		responses[i] = EntitlementResponse{
			Product:         productResponseFrom(e.Product),
			HasAccess:       e.HasAccess,
			EffectiveConfig: e.EffectiveConfig,
		}
	}
	return responses
}
