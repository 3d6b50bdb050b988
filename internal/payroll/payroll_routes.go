package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-payroll/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	periods := r.Group("/payroll-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.POST("/:id/process", middleware.Idempotency(rdb), handler.Process)
		periods.GET("/:id/payrolls", handler.GetAllByPeriod)
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("/:id", handler.GetById)
		payrolls.GET("/:id/breakdown", handler.GetBreakdown)
	}
}
