package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Create persists a newly issued session
func (r *GormSessionRepository) Create(ctx context.Context, session *identity.Session) error {
	model := models.SessionModelFromDomain(session)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByToken finds a session by its opaque token value
func (r *GormSessionRepository) FindByToken(ctx context.Context, token string) (*identity.Session, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	var model models.SessionModel
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Revoke marks the session with the given token as revoked.
// Unknown or already revoked tokens are not an error.
func (r *GormSessionRepository) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.SessionModel{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Updates(map[string]interface{}{
			"revoked_at": now,
			"updated_at": now,
		}).Error
}

// RevokeAllForUser revokes every live session of a user
func (r *GormSessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Updates(map[string]interface{}{
			"revoked_at": now,
			"updated_at": now,
		}).Error
}

// DeleteExpiredBefore removes sessions that expired before the cutoff
func (r *GormSessionRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormSessionRepository implements SessionRepository
var _ identity.SessionRepository = (*GormSessionRepository)(nil)
