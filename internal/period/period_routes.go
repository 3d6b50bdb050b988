package period

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	periods := r.Group("/payroll-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.POST("", handler.Create)
		periods.GET("", handler.GetAll)
		periods.GET("/:id", handler.GetById)
		periods.PUT("/:id", handler.Update)
		periods.DELETE("/:id", handler.Delete)
		periods.POST("/:id/approve", handler.Approve)
		periods.POST("/:id/lock", handler.Lock)
	}
}
