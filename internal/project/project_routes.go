package project

import (
	"staffops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("", handler.GetAll)
		projects.GET("/:id", handler.GetByID)
		projects.POST("", middleware.RoleMiddleware("admin", "manager"), handler.Create)
		projects.PUT("/:id", middleware.RoleMiddleware("admin", "manager"), handler.Update)
		projects.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)
	}
}
