package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.Engine) {
	router.POST("/auth/signup", controllers.SignUpHandler)
	router.POST("/auth/login", controllers.LoginHandler)
}
