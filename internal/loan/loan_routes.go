package loan

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	loans := r.Group("/loans")
	loans.Use(middleware.AuthMiddleware())
	{
		loans.POST("", handler.Create)
		loans.GET("", handler.GetAll)
		loans.GET("/:id", handler.GetById)
		loans.POST("/:id/repayments", handler.CreateRepayment)
		loans.GET("/:id/repayments", handler.GetRepayments)
	}
}
