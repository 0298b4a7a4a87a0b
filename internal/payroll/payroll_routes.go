package payroll

import (
	"staffops/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", handler.GetAll)
		payrolls.GET("/:id", handler.GetByID)
		payrolls.POST("", middleware.RoleMiddleware("admin", "manager"), handler.Create)
		payrolls.PUT("/:id", middleware.RoleMiddleware("admin", "manager"), handler.Update)
		payrolls.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)

		wizard := payrolls.Group("/wizard", middleware.RoleMiddleware("admin", "manager"))
		{
			wizard.POST("/preview", handler.Preview)
			wizard.POST("/commit", middleware.Idempotency(rdb), handler.Commit)
		}
	}
}
