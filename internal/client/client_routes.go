package client

import (
	"staffops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthMiddleware())
	{
		clients.GET("", handler.GetAll)
		clients.GET("/:id", handler.GetByID)
		clients.POST("", middleware.RoleMiddleware("admin", "manager"), handler.Create)
		clients.PUT("/:id", middleware.RoleMiddleware("admin", "manager"), handler.Update)
		clients.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)
	}
}
