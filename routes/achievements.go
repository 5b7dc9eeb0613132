package routes

import (
	"fitlog/controllers"
	"fitlog/websocket"

	"github.com/gin-gonic/gin"
)

func SetupAchievementRoutes(router *gin.RouterGroup) {
	router.GET("/achievements", controllers.GetAchievementsHandler)
	router.GET("/achievements/progress", controllers.GetAchievementProgressHandler)
	router.GET("/achievements/events", websocket.EventsHandler)
}
