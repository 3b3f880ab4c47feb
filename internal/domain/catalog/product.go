package catalog

import (
	"strings"

	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
)

// Product represents a distinct application tenants may be granted access to.
// It is the aggregate root for product catalog operations.
type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Slug          string // Stable external identifier, unique across the catalog
	Description   string
	Icon          string
	Color         string
	BaseURL       string
	DefaultConfig string // Opaque JSON config applied when no plan or tenant config exists
	IsActive      bool
}

// NewProduct creates a new product with required fields
func NewProduct(name, slug string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := identity.ValidateSlug(slug); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(strings.TrimSpace(slug)),
		DefaultConfig:     "{}",
		IsActive:          true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// SetDescription sets the product description
func (p *Product) SetDescription(description string) error {
	if len(description) > 1000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 1000 characters")
	}
	p.Description = description
	p.touch()
	return nil
}

// SetAppearance sets the icon and accent color shown in product listings
func (p *Product) SetAppearance(icon, color string) error {
	if icon != "" && len(icon) > 100 {
		return shared.NewDomainError("INVALID_ICON", "Icon cannot exceed 100 characters")
	}
	if color != "" && len(color) > 20 {
		return shared.NewDomainError("INVALID_COLOR", "Color cannot exceed 20 characters")
	}
	p.Icon = icon
	p.Color = color
	p.touch()
	return nil
}

// SetBaseURL sets the external entry point of the product
func (p *Product) SetBaseURL(baseURL string) error {
	if baseURL != "" && len(baseURL) > 500 {
		return shared.NewDomainError("INVALID_URL", "Base URL cannot exceed 500 characters")
	}
	p.BaseURL = baseURL
	p.touch()
	return nil
}

// SetDefaultConfig sets the product's fallback configuration
func (p *Product) SetDefaultConfig(config string) {
	if config == "" {
		config = "{}"
	}
	p.DefaultConfig = config
	p.touch()
}

// Activate makes the product available in listings
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.IsActive = true
	p.touch()
	return nil
}

// Deactivate hides the product from listings; existing entitlements keep resolving
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "Product is already inactive")
	}
	p.IsActive = false
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.Touch()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
