package catalog

import (
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/shared"
)

// Aggregate type constant for Product
const AggregateTypeProduct = "Product"

// Product domain event types
const (
	EventTypeProductCreated = "ProductCreated"
)

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, uuid.Nil),
		Name:            product.Name,
		Slug:            product.Slug,
	}
}
