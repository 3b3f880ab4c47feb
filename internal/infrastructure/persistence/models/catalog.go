package models

import (
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for products
type ProductModel struct {
	AggregateModel
	Name          string `gorm:"type:varchar(200);not null"`
	Slug          string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description   string `gorm:"type:varchar(1000)"`
	Icon          string `gorm:"type:varchar(100)"`
	Color         string `gorm:"type:varchar(20)"`
	BaseURL       string `gorm:"type:varchar(500)"`
	DefaultConfig string `gorm:"type:jsonb;not null;default:'{}'"`
	IsActive      bool   `gorm:"not null;default:true;index"`
}

// TableName specifies the table name
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
		Icon:              m.Icon,
		Color:             m.Color,
		BaseURL:           m.BaseURL,
		DefaultConfig:     m.DefaultConfig,
		IsActive:          m.IsActive,
	}
}

// ProductModelFromDomain creates a model from a domain product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Icon:          p.Icon,
		Color:         p.Color,
		BaseURL:       p.BaseURL,
		DefaultConfig: p.DefaultConfig,
		IsActive:      p.IsActive,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// PlanModel is the persistence model for plans
type PlanModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(200);not null"`
	Slug string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName specifies the table name
func (PlanModel) TableName() string {
	return "plans"
}

// ToDomain converts the model to a domain plan
func (m *PlanModel) ToDomain() *catalog.Plan {
	return &catalog.Plan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
	}
}

// PlanModelFromDomain creates a model from a domain plan
func PlanModelFromDomain(p *catalog.Plan) *PlanModel {
	m := &PlanModel{
		Name: p.Name,
		Slug: p.Slug,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// PlanProductModel is the persistence model for plan-level product grants
type PlanProductModel struct {
	BaseModel
	PlanID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_plan_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_plan_product"`
	Config    string    `gorm:"type:jsonb;not null;default:'{}'"`
	SortOrder int       `gorm:"not null;default:0"`
}

// TableName specifies the table name
func (PlanProductModel) TableName() string {
	return "plan_products"
}

// ToDomain converts the model to a domain plan product
func (m *PlanProductModel) ToDomain() *catalog.PlanProduct {
	return &catalog.PlanProduct{
		BaseEntity: m.BaseModel.ToDomain(),
		PlanID:     m.PlanID,
		ProductID:  m.ProductID,
		Config:     m.Config,
		SortOrder:  m.SortOrder,
	}
}

// PlanProductModelFromDomain creates a model from a domain plan product
func PlanProductModelFromDomain(pp *catalog.PlanProduct) *PlanProductModel {
	m := &PlanProductModel{
		PlanID:    pp.PlanID,
		ProductID: pp.ProductID,
		Config:    pp.Config,
		SortOrder: pp.SortOrder,
	}
	m.FromDomainBaseEntity(pp.BaseEntity)
	return m
}

// TenantProductModel is the persistence model for tenant-level product overrides
type TenantProductModel struct {
	BaseModel
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_product"`
	IsActive  bool      `gorm:"not null;default:false"`
	Config    *string   `gorm:"type:jsonb"`
}

// TableName specifies the table name
func (TenantProductModel) TableName() string {
	return "tenant_products"
}

// ToDomain converts the model to a domain tenant product
func (m *TenantProductModel) ToDomain() *catalog.TenantProduct {
	return &catalog.TenantProduct{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		ProductID:  m.ProductID,
		IsActive:   m.IsActive,
		Config:     m.Config,
	}
}

// TenantProductModelFromDomain creates a model from a domain tenant product
func TenantProductModelFromDomain(tp *catalog.TenantProduct) *TenantProductModel {
	m := &TenantProductModel{
		TenantID:  tp.TenantID,
		ProductID: tp.ProductID,
		IsActive:  tp.IsActive,
		Config:    tp.Config,
	}
	m.FromDomainBaseEntity(tp.BaseEntity)
	return m
}
