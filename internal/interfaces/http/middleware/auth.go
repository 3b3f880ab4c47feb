package middleware

import (
	"context"
	"net/http"
	"strings"

	appidentity "github.com/portal/backend/internal/application/identity"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthUserKey   = "auth_user"
	AuthUserIDKey = "auth_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// SessionVerifier checks a session token and resolves its user.
// Verification is read-only; an invalid token never mutates state.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*appidentity.VerifyResult, error)
}

// AuthMiddlewareConfig holds configuration for session authentication middleware
type AuthMiddlewareConfig struct {
	// Verifier is required for token validation
	Verifier SessionVerifier
	// CookieName is the session cookie to read the token from
	CookieName string
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultAuthConfig returns default session middleware configuration
func DefaultAuthConfig(verifier SessionVerifier, cookieName string) AuthMiddlewareConfig {
	return AuthMiddlewareConfig{
		Verifier:   verifier,
		CookieName: cookieName,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/auth/login",
			"/auth/logout",
		},
	}
}

// SessionAuthMiddleware creates session authentication middleware
func SessionAuthMiddleware(verifier SessionVerifier, cookieName string) gin.HandlerFunc {
	return SessionAuthMiddlewareWithConfig(DefaultAuthConfig(verifier, cookieName))
}

// SessionAuthMiddlewareWithConfig creates session authentication middleware with custom config
func SessionAuthMiddlewareWithConfig(cfg AuthMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token := ExtractSessionToken(c, cfg.CookieName)
		if token == "" {
			handleAuthError(c, cfg, "Authentication required")
			return
		}

		result, err := cfg.Verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Session verification failed",
					zap.String("path", path),
					zap.Error(err))
			}
			handleAuthError(c, cfg, "Authentication required")
			return
		}

		setAuthContext(c, result)
		c.Next()
	}
}

// RequireSuperAdmin rejects requests whose authenticated user is not a
// platform administrator. It must run after the session middleware.
// Non-administrators get the same 401 as unauthenticated callers, so
// operator-only routes do not reveal themselves to tenant users.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil || user.Role != identity.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}
		c.Next()
	}
}

// ExtractSessionToken reads the session token from the cookie, falling
// back to a Bearer authorization header for non-browser callers
func ExtractSessionToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token
		}
	}

	authHeader := c.GetHeader(AuthHeaderKey)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}

func setAuthContext(c *gin.Context, result *appidentity.VerifyResult) {
	user := result.User

	c.Set(AuthUserKey, &user)
	c.Set(AuthUserIDKey, user.ID.String())

	// Propagate identity into the request context for log enrichment
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	ctx, _ = logger.WithUserID(ctx, log, user.ID.String())
	if user.TenantID != nil {
		ctx, _ = logger.WithTenantID(ctx, log, user.TenantID.String())
	}
	c.Request = c.Request.WithContext(ctx)
}

// handleAuthError aborts the request with a 401 response
func handleAuthError(c *gin.Context, cfg AuthMiddlewareConfig, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetAuthUser retrieves the authenticated user projection from gin.Context
func GetAuthUser(c *gin.Context) *appidentity.UserInfo {
	if value, exists := c.Get(AuthUserKey); exists {
		if user, ok := value.(*appidentity.UserInfo); ok {
			return user
		}
	}
	return nil
}

// GetAuthUserID retrieves the authenticated user ID from gin.Context
func GetAuthUserID(c *gin.Context) string {
	if value, exists := c.Get(AuthUserIDKey); exists {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

