package bankaccount

import (
	"staffops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	accounts := r.Group("/bank-accounts")
	accounts.Use(middleware.AuthMiddleware())
	{
		accounts.GET("", handler.GetAll)
		accounts.GET("/:id", handler.GetByID)
		accounts.POST("", middleware.RoleMiddleware("admin"), handler.Create)
		accounts.PUT("/:id", middleware.RoleMiddleware("admin"), handler.Update)
		accounts.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)
	}
}
