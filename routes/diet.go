package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupDietRoutes(router *gin.RouterGroup) {
	router.POST("/diet/meals", controllers.AddMealHandler)
	router.DELETE("/diet/meals", controllers.RemoveMealHandler)
	router.GET("/diet/days", controllers.GetDietDaysHandler)
	router.GET("/diet/days/:date", controllers.GetDietDayHandler)
	router.GET("/diet/days/:date/macros/:component", controllers.GetMacroBreakdownHandler)
	router.GET("/diet/history", controllers.GetDietHistoryHandler)
	router.GET("/ingredients/:ean", controllers.GetIngredientByEanHandler)
}
