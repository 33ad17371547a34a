// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devoapp/backend/pkg/token"
)

const (
	AuthUserIDKey   = "auth_user_id"
	AuthUserNameKey = "auth_user_name"
	AuthEmailKey    = "auth_email"
)

// AuthMiddleware validates the bearer token issued by the external identity
// provider and exposes its identity claims on the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthUserNameKey, claims.DisplayName)
		c.Set(AuthEmailKey, claims.Email)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user id from the context.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(AuthUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// CurrentUserName extracts the authenticated display name, falling back to
// the email when the provider sent no name.
func CurrentUserName(c *gin.Context) string {
	if v, ok := c.Get(AuthUserNameKey); ok {
		if name, ok := v.(string); ok && name != "" {
			return name
		}
	}
	if v, ok := c.Get(AuthEmailKey); ok {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}
