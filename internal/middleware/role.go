package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-tms/pkg/utils"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, allowed := range allowedRoles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware("admin")
}

// DispatcherOrAdmin guards load mutations and status transitions.
func DispatcherOrAdmin() gin.HandlerFunc {
	return RoleMiddleware("dispatcher", "admin")
}

// AccountingOrAdmin guards the financial tail of the lifecycle.
func AccountingOrAdmin() gin.HandlerFunc {
	return RoleMiddleware("accounting", "admin")
}

// DriverOrDispatcher guards tracking submission from the road.
func DriverOrDispatcher() gin.HandlerFunc {
	return RoleMiddleware("driver", "dispatcher", "admin")
}
