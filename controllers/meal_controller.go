package controllers

import (
	"net/http"

	"fitlog/models"
	"fitlog/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaveMealHandler stores a private reusable meal
func SaveMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.SaveMealRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	category, err := models.ParseMealCategory(request.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := mealFromInputs(request.Name, category, request.Ingredients)
	if res := mealService.SaveMeal(c.Request.Context(), userID, request.Name, meal); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal saved"})
}

// GetSavedMealsHandler lists the user's saved meals
func GetSavedMealsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	meals, res := mealService.SavedMeals(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// DeleteSavedMealHandler removes one saved meal by name
func DeleteSavedMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if res := mealService.DeleteSavedMeal(c.Request.Context(), userID, c.Param("name")); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}

// PublishMealHandler shares a meal with the community
func PublishMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.PublishMealRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	category, err := models.ParseMealCategory(request.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := mealFromInputs(request.Name, category, request.Ingredients)
	published, res := mealService.PublishMeal(c.Request.Context(), userID, request.Name, meal, category)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": published})
}

// UnpublishMealHandler removes one of the caller's published meals
func UnpublishMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := primitive.ObjectIDFromHex(c.Param("mealId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	if res := mealService.UnpublishMeal(c.Request.Context(), userID, mealID); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal unpublished"})
}

// LikeMealHandler likes a published meal
func LikeMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := primitive.ObjectIDFromHex(c.Param("mealId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	allowed, err := rateLimiter.CheckLikeRateLimit(c.Request.Context(), userID, rateLimits)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate limiting unavailable"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many likes, slow down"})
		return
	}

	if res := mealService.LikeMeal(c.Request.Context(), userID, mealID); !res.Success {
		fail(c, res)
		return
	}
	rateLimiter.RecordLike(c.Request.Context(), userID, rateLimits)

	c.JSON(http.StatusOK, gin.H{"message": "Meal liked"})
}

// UnlikeMealHandler removes the caller's like from a published meal
func UnlikeMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := primitive.ObjectIDFromHex(c.Param("mealId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	if res := mealService.UnlikeMeal(c.Request.Context(), userID, mealID); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}

// BrowsePublishedMealsHandler lists the community feed
func BrowsePublishedMealsHandler(c *gin.Context) {
	filter, err := models.ParseMealFilter(c.DefaultQuery("filter", "all"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category *models.MealCategory
	if raw := c.Query("category"); raw != "" {
		parsed, err := models.ParseMealCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category = &parsed
	}

	meals, res := mealService.Browse(c.Request.Context(), filter, category)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}
