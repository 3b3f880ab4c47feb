package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/cache"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	SessionTTL time.Duration // lifetime of issued sessions
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		SessionTTL: identity.DefaultSessionTTL,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo     identity.UserRepository
	tenantRepo   identity.TenantRepository
	sessionRepo  identity.SessionRepository
	sessionCache cache.SessionCache
	config       AuthServiceConfig
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tenantRepo identity.TenantRepository,
	sessionRepo identity.SessionRepository,
	sessionCache cache.SessionCache,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tenantRepo:   tenantRepo,
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		config:       config,
		logger:       logger,
	}
}

// Login authenticates a user and issues a new session.
// Unknown emails, wrong passwords, and inactive accounts all produce
// the same generic failure so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.findUserForLogin(ctx, input.Email, input.TenantSlug)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.CanLogin() {
		s.logger.Warn("Login attempt for inactive account", zap.String("email", input.Email))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.ErrInvalidCredentials
	}

	session, err := identity.NewSession(user.ID, s.config.SessionTTL)
	if err != nil {
		s.logger.Error("Failed to create session", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error("Failed to persist session", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		// The database remains authoritative, so caching is best-effort
		s.logger.Warn("Failed to cache session", zap.Error(err))
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Don't fail the login - just log the error
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("email", input.Email),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      userInfoFrom(user),
	}, nil
}

// findUserForLogin resolves the account a login attempt targets.
// Emails are unique per tenant, so a tenant slug scopes the lookup to
// that tenant. Without a slug, or when no tenant-scoped account
// matches, the lookup falls back to platform accounts (null tenant).
func (s *AuthService) findUserForLogin(ctx context.Context, email, tenantSlug string) (*identity.User, error) {
	if tenantSlug != "" {
		tenant, err := s.tenantRepo.FindBySlug(ctx, tenantSlug)
		if err != nil {
			return nil, err
		}
		user, err := s.userRepo.FindByEmailAndTenant(ctx, email, tenant.ID)
		if err == nil {
			return user, nil
		}
	}
	return s.userRepo.FindPlatformUserByEmail(ctx, email)
}

// Verify resolves the identity behind a session token. It is read-only
// and safe to call many times per request. Absent, expired, and revoked
// tokens all fail with the same unauthorized error.
func (s *AuthService) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	if token == "" {
		return nil, shared.ErrUnauthorized
	}

	session, err := s.lookupSession(ctx, token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	if !session.IsValid(time.Now()) {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		s.logger.Warn("Session references unknown user", zap.String("user_id", session.UserID.String()))
		return nil, shared.ErrUnauthorized
	}

	if !user.CanLogin() {
		return nil, shared.ErrUnauthorized
	}

	return &VerifyResult{
		Session: session,
		User:    userInfoFrom(user),
	}, nil
}

// lookupSession checks the cache before the session store. The cache
// is written only at login and evicted on revocation; reads never
// repopulate it, so a concurrent logout cannot be undone by a verify
// that raced the eviction.
func (s *AuthService) lookupSession(ctx context.Context, token string) (*identity.Session, error) {
	cached, err := s.sessionCache.Get(ctx, token)
	if err != nil {
		s.logger.Warn("Session cache lookup failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	return s.sessionRepo.FindByToken(ctx, token)
}

// Logout revokes a session token. Revocation always succeeds: unknown
// and already-revoked tokens are not errors, and store failures are
// swallowed after logging.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}

	// Evict the cache first: a verify that lands between the two
	// writes must fall through to the store and see the revocation.
	if err := s.sessionCache.Delete(ctx, token); err != nil {
		s.logger.Warn("Failed to evict session from cache", zap.Error(err))
	}
	if err := s.sessionRepo.Revoke(ctx, token); err != nil {
		s.logger.Error("Failed to revoke session", zap.Error(err))
	}
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	info := userInfoFrom(user)
	return &info, nil
}
