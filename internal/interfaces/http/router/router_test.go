package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/portal/backend/internal/application/catalog"
	appidentity "github.com/portal/backend/internal/application/identity"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/cache"
	"github.com/portal/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubVerifier returns a fixed verification result for every token
type stubVerifier struct {
	result *appidentity.VerifyResult
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*appidentity.VerifyResult, error) {
	return s.result, s.err
}

func memberVerifier(t *testing.T, tenantID uuid.UUID) *stubVerifier {
	t.Helper()
	session, err := identity.NewSession(uuid.New(), time.Hour)
	require.NoError(t, err)
	return &stubVerifier{
		result: &appidentity.VerifyResult{
			Session: session,
			User: appidentity.UserInfo{
				ID:       uuid.New(),
				TenantID: &tenantID,
				Email:    "member@example.com",
				Name:     "Member",
				Role:     identity.RoleMember,
			},
		},
	}
}

// newTestEngine builds the full engine with handlers whose services are
// never reached by the scenarios under test
func newTestEngine(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	authService := appidentity.NewAuthService(
		nil, nil, nil,
		cache.NewInMemorySessionCache(),
		appidentity.DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
	cfg.Logger = zap.NewNop()
	cfg.CookieName = "session"
	cfg.Handlers = Handlers{
		Auth:    handler.NewAuthHandler(authService, handler.DefaultCookieSettings(), nil),
		Product: handler.NewProductHandler(appcatalog.NewProductService(nil, zap.NewNop())),
		Tenant:  handler.NewTenantHandler(nil, nil),
		System:  handler.NewSystemHandler(nil),
	}
	return Setup(cfg)
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine := newTestEngine(Config{Verifier: &stubVerifier{err: shared.ErrUnauthorized}})

	for _, path := range []string{"/health", "/ping"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_LoginSkipsAuthentication(t *testing.T) {
	engine := newTestEngine(Config{Verifier: &stubVerifier{err: shared.ErrUnauthorized}})

	// An invalid payload reaches the handler and fails binding, which
	// proves the session middleware let the request through
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ProtectedRouteRequiresSession(t *testing.T) {
	engine := newTestEngine(Config{Verifier: &stubVerifier{err: shared.ErrUnauthorized}})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_InvalidTokenRejected(t *testing.T) {
	engine := newTestEngine(Config{Verifier: &stubVerifier{err: shared.ErrUnauthorized}})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "stale-token"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SuperAdminRoutesRejectMembers(t *testing.T) {
	engine := newTestEngine(Config{Verifier: memberVerifier(t, uuid.New())})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/products"},
		{http.MethodPost, "/tenants"},
		{http.MethodPut, "/tenants/" + uuid.NewString() + "/status"},
		{http.MethodPut, "/tenants/" + uuid.NewString() + "/products/" + uuid.NewString()},
	}

	for _, tt := range paths {
		req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, tt.method+" "+tt.path)
	}
}

func TestRouter_OtherTenantProductsForbidden(t *testing.T) {
	engine := newTestEngine(Config{Verifier: memberVerifier(t, uuid.New())})

	req := httptest.NewRequest(http.MethodGet, "/tenants/"+uuid.NewString()+"/products", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_LoginRateLimit(t *testing.T) {
	engine := newTestEngine(Config{
		Verifier:        &stubVerifier{err: shared.ErrUnauthorized},
		LoginRateLimit:  2,
		LoginRateWindow: time.Minute,
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusBadRequest, codes[0])
	assert.Equal(t, http.StatusBadRequest, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestRouter_UnknownRoute(t *testing.T) {
	engine := newTestEngine(Config{Verifier: &stubVerifier{err: shared.ErrUnauthorized}})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
