package remittance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	periods := r.Group("/payroll-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.POST("/:id/remittances", handler.Schedule)
	}

	remittances := r.Group("/remittances")
	remittances.Use(middleware.AuthMiddleware())
	{
		remittances.GET("", handler.GetAll)
		remittances.POST("/:id/remit", handler.MarkAsRemitted)
	}
}
