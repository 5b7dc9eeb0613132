package routes

import (
	"fitlog/controllers"

	"github.com/gin-gonic/gin"
)

func SetupMealRoutes(router *gin.RouterGroup) {
	// Saved meals
	router.POST("/meals/saved", controllers.SaveMealHandler)
	router.GET("/meals/saved", controllers.GetSavedMealsHandler)
	router.DELETE("/meals/saved/:name", controllers.DeleteSavedMealHandler)

	// Published feed
	router.POST("/meals/published", controllers.PublishMealHandler)
	router.DELETE("/meals/published/:mealId", controllers.UnpublishMealHandler)
	router.GET("/meals/published", controllers.BrowsePublishedMealsHandler)
	router.POST("/meals/published/:mealId/like", controllers.LikeMealHandler)
	router.DELETE("/meals/published/:mealId/like", controllers.UnlikeMealHandler)
}
