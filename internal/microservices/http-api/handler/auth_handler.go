package handler

import (
	"log/slog"
	"net/http"
	"time"

	"bookswap/internal/microservices/http-api/dto"
	"bookswap/internal/microservices/http-api/middleware"
	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const RefreshCookieName = "refresh_token"

// CookieSettings controls how token cookies are written.
type CookieSettings struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	authService service.AuthService
	cookies     CookieSettings
}

func NewAuthHandler(authService service.AuthService, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register creates an account
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Obtain issues an access/refresh pair, in the body and as cookies
// POST /api/token
func (h *AuthHandler) Obtain(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pair, _, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, middleware.AccessCookieName, pair.Access, int(h.cookies.AccessTTL.Seconds()))
	h.setCookie(c, RefreshCookieName, pair.Refresh, int(h.cookies.RefreshTTL.Seconds()))

	c.JSON(http.StatusOK, dto.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Refresh trades a refresh token for a new access token. The body may omit
// the token when the refresh_token cookie carries it.
// POST /api/token/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := req.Refresh
	if token == "" {
		token, _ = c.Cookie(RefreshCookieName)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	access, err := h.authService.Refresh(ctx, token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, middleware.AccessCookieName, access, int(h.cookies.AccessTTL.Seconds()))
	c.JSON(http.StatusOK, dto.AccessTokenResponse{Access: access})
}

// Logout denylists the refresh token and clears both cookies
// POST /api/token/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	_ = bindOptionalJSON(c, &req)

	token := req.Refresh
	if token == "" {
		token, _ = c.Cookie(RefreshCookieName)
	}

	if token != "" {
		ctx, cancel := requestContext(c)
		defer cancel()
		if err := h.authService.Revoke(ctx, token); err != nil {
			slog.Debug("logout with unusable refresh token", "error", err)
		}
	}

	h.setCookie(c, middleware.AccessCookieName, "", -1)
	h.setCookie(c, RefreshCookieName, "", -1)

	// always succeed to avoid token fishing
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the acting identity
// GET /api/v1/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.CurrentUser(ctx, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(*user))
}
