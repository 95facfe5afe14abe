package middleware

import (
	"net/http"

	"auth_service/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific roles among
// the token's role claims
func RoleMiddleware(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolesVal, exists := c.Get(AuthRolesKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Roles not found in token, ensure JWT middleware runs first"})
			return
		}

		roles, ok := rolesVal.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid roles type in token"})
			return
		}

		isAllowed := false
		for _, role := range roles {
			for _, allowedRole := range allowedRoles {
				if role == string(allowedRole) {
					isAllowed = true
					break
				}
			}
		}

		if !isAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if the principal holds the ADMIN role
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// UserMiddleware allows both users and admins
func UserMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleUser, model.RoleAdmin)
}
