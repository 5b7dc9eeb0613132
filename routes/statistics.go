package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupStatisticsRoutes(router *gin.RouterGroup) {
	router.GET("/statistics", controllers.GetStatisticsHandler)
	router.POST("/statistics", controllers.RecordStatisticHandler)
	router.GET("/statistics/:type", controllers.GetStatisticWindowHandler)
}
