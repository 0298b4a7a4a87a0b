package profile

import (
	"staffops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware())
	{
		profiles.GET("", handler.GetAll)
		profiles.GET("/:id", handler.GetByID)
		profiles.POST("/operations", handler.Operations)
		profiles.POST("", middleware.RoleMiddleware("admin", "manager"), handler.Create)
		profiles.PUT("/:id", middleware.RoleMiddleware("admin", "manager"), handler.Update)
		profiles.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)
	}
}
