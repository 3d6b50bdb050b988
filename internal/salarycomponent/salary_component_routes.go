package salarycomponent

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	components := r.Group("/salary-components")
	components.Use(middleware.AuthMiddleware())
	{
		components.POST("", handler.CreateComponent)
		components.GET("", handler.GetAllComponents)
		components.PATCH("/:id", handler.UpdateComponent)
		components.POST("/:id/assignments", handler.AssignComponent)
		components.GET("/assignments/employee/:employeeId", handler.GetEmployeeAssignments)
	}
}
