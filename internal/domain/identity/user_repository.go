package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmailAndTenant finds a user by email scoped to a tenant
	FindByEmailAndTenant(ctx context.Context, email string, tenantID uuid.UUID) (*User, error)

	// FindPlatformUserByEmail finds a cross-tenant user (tenant_id IS NULL) by email
	FindPlatformUserByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter with pagination
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)

	// CountByTenant returns the total number of users for a tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// CountActiveSince counts tenant users whose last login is at or after the cutoff
	CountActiveSince(ctx context.Context, tenantID uuid.UUID, cutoff time.Time) (int64, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	// Search keyword for email or name
	Keyword string

	// Filter by tenant
	TenantID *uuid.UUID

	// Filter by role
	Role *UserRole

	// Filter by active flag
	IsActive *bool

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewUserFilter creates a new UserFilter with default values
func NewUserFilter() UserFilter {
	return UserFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// Offset returns the row offset for the current page
func (f UserFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

// Limit returns the page size, bounded to a sane range
func (f UserFilter) Limit() int {
	if f.PageSize < 1 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
