package workinghour

import (
	"staffops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	hours := r.Group("/working-hours")
	hours.Use(middleware.AuthMiddleware())
	{
		hours.GET("", handler.GetAll)
		hours.GET("/summary", handler.Summary)
		hours.GET("/:id", handler.GetByID)
		hours.POST("", handler.Create)
		hours.PUT("/:id", handler.Update)
		hours.DELETE("/:id", handler.Delete)
		hours.POST("/:id/approve", middleware.RoleMiddleware("admin", "manager"), handler.Approve)
		hours.POST("/:id/reject", middleware.RoleMiddleware("admin", "manager"), handler.Reject)
	}
}
