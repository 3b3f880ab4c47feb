package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
)

// TenantModel is the persistence model for tenants
type TenantModel struct {
	AggregateModel
	Name   string    `gorm:"type:varchar(200);not null"`
	Slug   string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status string    `gorm:"type:varchar(20);not null;index"`
	PlanID uuid.UUID `gorm:"type:uuid;not null;index"`
	Notes  string    `gorm:"type:text"`
}

// TableName specifies the table name
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
		Status:            identity.TenantStatus(m.Status),
		PlanID:            m.PlanID,
		Notes:             m.Notes,
	}
}

// TenantModelFromDomain creates a model from a domain tenant
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{
		Name:   t.Name,
		Slug:   t.Slug,
		Status: string(t.Status),
		PlanID: t.PlanID,
		Notes:  t.Notes,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// UserModel is the persistence model for user accounts.
// TenantID is nullable; platform accounts carry no tenant. Email uniqueness
// within a tenant (and among platform accounts) is enforced by partial
// unique indexes created in migrations.
type UserModel struct {
	AggregateModel
	Email        string     `gorm:"type:varchar(200);not null;index"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Name         string     `gorm:"type:varchar(200);not null"`
	Role         string     `gorm:"type:varchar(20);not null"`
	TenantID     *uuid.UUID `gorm:"type:uuid;index"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:"index"`
	LastLoginIP  string     `gorm:"type:varchar(45)"`
}

// TableName specifies the table name
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Name:              m.Name,
		Role:              identity.UserRole(m.Role),
		TenantID:          m.TenantID,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
	}
}

// UserModelFromDomain creates a model from a domain user
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		TenantID:     u.TenantID,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
		LastLoginIP:  u.LastLoginIP,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// SessionModel is the persistence model for auth sessions
type SessionModel struct {
	BaseModel
	Token     string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time `gorm:""`
}

// TableName specifies the table name
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the model to a domain session
func (m *SessionModel) ToDomain() *identity.Session {
	return &identity.Session{
		BaseEntity: m.BaseModel.ToDomain(),
		Token:      m.Token,
		UserID:     m.UserID,
		ExpiresAt:  m.ExpiresAt,
		RevokedAt:  m.RevokedAt,
	}
}

// SessionModelFromDomain creates a model from a domain session
func SessionModelFromDomain(s *identity.Session) *SessionModel {
	m := &SessionModel{
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
