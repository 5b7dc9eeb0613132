package controllers

import (
	"net/http"

	"fitlog/middlewares"
	"fitlog/models"
	"fitlog/structs"

	"github.com/gin-gonic/gin"
)

// PutIngredientHandler creates or replaces a catalog ingredient. Admin only.
func PutIngredientHandler(c *gin.Context) {
	var request structs.PutIngredientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ing := models.Ingredient{
		Ean:      request.Ean,
		Name:     request.Name,
		Calories: request.Calories,
		Protein:  request.Protein,
		Carbs:    request.Carbs,
		Fats:     request.Fats,
	}
	if res := dietService.PutIngredient(c.Request.Context(), ing); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient stored"})
}

// UpsertAchievementHandler creates or updates an achievement definition.
// Admin only.
func UpsertAchievementHandler(c *gin.Context) {
	var request structs.UpsertAchievementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	def := models.Achievement{
		Code:         request.Code,
		Name:         request.Name,
		Description:  request.Description,
		Target:       request.Target,
		DailyLimited: request.DailyLimited,
	}
	if res := achievementService.UpsertDefinition(def); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Achievement stored"})
}

// GrantRoleHandler assigns an RBAC role to a user. Admin only.
func GrantRoleHandler(c *gin.Context) {
	var request structs.GrantRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if err := middlewares.GrantRole(request.UserID, request.Role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant role", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role granted"})
}

// GetAccountHandler returns one account's profile. Admin only.
func GetAccountHandler(c *gin.Context) {
	account, res := accountService.Profile(c.Param("userId"))
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}
