package roster

import (
	"staffops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	rosters := r.Group("/rosters")
	rosters.Use(middleware.AuthMiddleware())
	{
		rosters.GET("", handler.GetAll)
		rosters.GET("/:id", handler.GetByID)
		rosters.POST("/generate", middleware.RoleMiddleware("admin", "manager"), handler.Generate)
		rosters.PUT("/:id", middleware.RoleMiddleware("admin", "manager"), handler.Update)
		rosters.DELETE("/:id", middleware.RoleMiddleware("admin", "manager"), handler.Delete)
	}
}
