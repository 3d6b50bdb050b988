package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-payroll/internal/shared/response"
)

// AuthMiddleware trusts the identity headers set by the gateway in front of
// this service. Authentication and RBAC live there; the engine only needs a
// valid company scope and an actor id for audit fields.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader("X-Company-ID")
		actorID := c.GetHeader("X-Actor-ID")

		if _, err := uuid.Parse(companyID); err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid company scope", nil)
			c.Abort()
			return
		}
		if _, err := uuid.Parse(actorID); err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid actor id", nil)
			c.Abort()
			return
		}

		c.Set("company_id", companyID)
		c.Set("user_id_validated", actorID)
		c.Next()
	}
}
