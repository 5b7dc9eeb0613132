package routes

import (
	"fitlog/controllers"
	"fitlog/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the RBAC-guarded catalog management routes.
func SetupAdminRoutes(router *gin.Engine) {
	admin := router.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.PUT("/ingredients", middlewares.RBACMiddleware("ingredient", "write"), controllers.PutIngredientHandler)
		admin.PUT("/achievements", middlewares.RBACMiddleware("achievement", "write"), controllers.UpsertAchievementHandler)
		admin.POST("/roles", middlewares.RBACMiddleware("role", "write"), controllers.GrantRoleHandler)
		admin.GET("/accounts/:userId", middlewares.RBACMiddleware("account", "read"), controllers.GetAccountHandler)
	}
}
