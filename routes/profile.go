package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupProfileRoutes(router *gin.RouterGroup) {
	router.GET("/profile", controllers.GetProfileHandler)
	router.PUT("/profile", controllers.UpdateProfileHandler)
}
