package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayhaven/booking-backend/internal/auth"
	"github.com/stayhaven/booking-backend/internal/user"
)

// RequireAdmin ensures the authenticated user has an admin role.
// The role comes from the validated JWT claims, so no DB lookup is
// needed here. It MUST be used after auth.AuthRequired middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !user.Role(p.Role).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
