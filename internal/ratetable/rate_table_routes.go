package ratetable

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tables := r.Group("/rate-tables")
	tables.Use(middleware.AuthMiddleware())
	{
		tables.POST("", handler.Create)
		tables.GET("", handler.GetAll)
	}
}
