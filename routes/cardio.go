package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupCardioRoutes(router *gin.RouterGroup) {
	router.POST("/cardio/sessions", controllers.LogCardioHandler)
	router.GET("/cardio/days", controllers.GetCardioDaysHandler)
	router.GET("/cardio/days/:date", controllers.GetCardioDayHandler)
	router.DELETE("/cardio/days/:date", controllers.RemoveCardioDayHandler)
	router.GET("/cardio/history", controllers.GetCardioHistoryHandler)
	router.GET("/cardio/recent/:activity", controllers.GetMostRecentActivityHandler)
}
