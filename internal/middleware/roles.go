package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route group to the given roles. Must run after
// AuthMiddleware. Row-level scoping (own business only, etc.) stays in the
// handlers; this is the coarse gate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		roleStr, ok := role.(string)
		if !ok || !allowed[roleStr] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
			return
		}
		c.Next()
	}
}

// BusinessID reads the caller's business from the context. Second return is
// false for customers/employees.
func BusinessID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextBusinessID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
