package controllers

import (
	"net/http"

	"fitlog/models"
	"fitlog/structs"

	"github.com/gin-gonic/gin"
)

func mealFromInputs(name string, category models.MealCategory, inputs []structs.IngredientInput) models.Meal {
	meal := models.Meal{Name: name, Category: category}
	for _, in := range inputs {
		meal.Ingredients = append(meal.Ingredients, models.MealIngredient{
			Ean:      in.Ean,
			Name:     in.Name,
			Grams:    in.Grams,
			Calories: in.Calories,
			Protein:  in.Protein,
			Carbs:    in.Carbs,
			Fats:     in.Fats,
		})
	}
	return meal
}

// AddMealHandler logs a meal into a diet day
func AddMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.AddMealRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	date, ok := parseDate(c, request.Date)
	if !ok {
		return
	}

	category, err := models.ParseMealCategory(request.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := mealFromInputs(request.Name, category, request.Ingredients)
	if res := dietService.AddMeal(c.Request.Context(), userID, date, meal); !res.Success {
		fail(c, res)
		return
	}

	countToward(userID, "meals_logged", date)
	c.JSON(http.StatusOK, gin.H{"message": "Meal logged"})
}

// GetDietDayHandler returns the meals of one active day
func GetDietDayHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	meals, res := dietService.Day(c.Request.Context(), userID, date)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "meals": meals})
}

// GetDietDaysHandler returns the active diet window
func GetDietDaysHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, res := dietService.ActiveDays(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// RemoveMealHandler deletes a meal by name from one active day
func RemoveMealHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request structs.RemoveMealRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	date, ok := parseDate(c, request.Date)
	if !ok {
		return
	}

	if res := dietService.RemoveMeal(c.Request.Context(), userID, date, request.Name); !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal removed"})
}

// GetDietHistoryHandler returns the archived diet days
func GetDietHistoryHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, res := dietService.History(c.Request.Context(), userID)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetMacroBreakdownHandler sums one macronutrient across a day's meals
func GetMacroBreakdownHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	component, err := models.ParseMacroComponent(c.Param("component"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total, res := dietService.MacroBreakdown(c.Request.Context(), userID, date, component)
	if !res.Success {
		fail(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "component": component, "total": total})
}

// GetIngredientByEanHandler resolves a catalog ingredient by barcode. A
// missing code answers 404 with an empty ingredient body.
func GetIngredientByEanHandler(c *gin.Context) {
	ean := c.Param("ean")

	ing, res := dietService.GetIngridientByEan(c.Request.Context(), ean)
	if !res.Success {
		c.JSON(res.Code.HTTPStatus(), gin.H{"error": res.Message, "code": res.Code.String(), "ingredient": ing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredient": ing})
}
