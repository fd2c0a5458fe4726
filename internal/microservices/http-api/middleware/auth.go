package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bookswap/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// AccessCookieName is the HttpOnly cookie the access token travels in.
const AccessCookieName = "access_token"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// The token is taken from the Authorization header first and from the
// access_token cookie when the header is absent.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrExpiredToken) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		// Set user info in context for handlers to use
		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		// format: "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	if cookie, err := c.Cookie(AccessCookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errors.New("authentication credentials were not provided")
}

// UserID returns the authenticated user's id, or "" outside AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString("userID")
}
