package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appidentity "github.com/portal/backend/internal/application/identity"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// CookieSettings controls how the session cookie is written
type CookieSettings struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieSettings returns the session cookie defaults
func DefaultCookieSettings() CookieSettings {
	return CookieSettings{
		Name:     "session",
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	cookie      CookieSettings
	// ssoLoginURLs maps a product key to the external login URL used
	// by the logout redirect flow
	ssoLoginURLs map[string]string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, cookie CookieSettings, ssoLoginURLs map[string]string) *AuthHandler {
	if cookie.Name == "" {
		cookie = DefaultCookieSettings()
	}
	return &AuthHandler{
		authService:  authService,
		cookie:       cookie,
		ssoLoginURLs: ssoLoginURLs,
	}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password, optionally scoped to a tenant
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		TenantSlug: req.TenantSlug,
		IP:         c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, int(time.Until(result.ExpiresAt).Seconds()))

	h.Success(c, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      authUserResponseFrom(result.User),
	})
}

// Logout godoc
// @Summary      User logout
// @Description  Revoke the current session and clear the cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=LogoutResponse}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Revocation always succeeds; an absent or unknown token is a no-op
	token := middleware.ExtractSessionToken(c, h.cookie.Name)
	h.authService.Logout(c.Request.Context(), token)

	h.clearSessionCookie(c)
	h.Success(c, LogoutResponse{Message: "Logged out"})
}

// LogoutRedirect godoc
// @Summary      Browser logout with redirect
// @Description  Revoke the session, clear the cookie and redirect to the product's login page
// @Tags         auth
// @Param        redirect query string false "Product key resolved through the configured login-URL map"
// @Param        returnUrl query string false "Explicit redirect target, overrides the product key"
// @Success      302
// @Router       /auth/logout [get]
func (h *AuthHandler) LogoutRedirect(c *gin.Context) {
	token := middleware.ExtractSessionToken(c, h.cookie.Name)
	h.authService.Logout(c.Request.Context(), token)
	h.clearSessionCookie(c)

	target := "/"
	if key := c.Query("redirect"); key != "" {
		if url, ok := h.ssoLoginURLs[key]; ok {
			target = url
		}
	}
	if returnURL := c.Query("returnUrl"); returnURL != "" {
		target = returnURL
	}

	c.Redirect(http.StatusFound, target)
}

// Me godoc
// @Summary      Current user
// @Description  Return the user behind the current session
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=AuthUserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	if user == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, authUserResponseFrom(*user))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, token, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

// clearSessionCookie expires the cookie immediately (Max-Age=0)
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}
