package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates the admin routes. It runs after RequireAuth, so a
// missing role means the identity context was never populated.
func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			abortUnauthorized(c, "missing_token", "Missing identity context")
			return
		}
		if role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "access_denied",
					"message": "Access denied. Admin only.",
				},
			})
			return
		}
		c.Next()
	}
}
