package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupTrainingRoutes(router *gin.RouterGroup) {
	router.POST("/training/exercises", controllers.LogExerciseHandler)
	router.DELETE("/training/exercises", controllers.RemoveExerciseHandler)
	router.GET("/training/days", controllers.GetTrainingDaysHandler)
	router.GET("/training/days/:date", controllers.GetTrainingDayHandler)
	router.GET("/training/history", controllers.GetTrainingHistoryHandler)
}
