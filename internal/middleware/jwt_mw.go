package middleware

import (
	"net/http"
	"strings"

	"auth_service/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthPhoneKey = "authPhone"
	AuthRolesKey = "authRoles"
)

// JWTAuthMiddleware creates a middleware for JWT authentication. On
// success the subject phone number and role claims are set in the
// request context.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		tokenString := parts[1]
		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Set principal information in context
		c.Set(AuthPhoneKey, claims.Subject)
		c.Set(AuthRolesKey, claims.Roles)

		c.Next()
	}
}
