package seed

import (
	"context"
	"log"

	"fitlog/models"
	"fitlog/services"
)

// Achievements installs the built-in achievement definitions. UpsertDefinition
// is idempotent by code, so restarts do not duplicate anything.
func Achievements(achievements *services.AchievementService) {
	defs := []models.Achievement{
		{Code: "meals_logged", Name: "Meal Tracker", Description: "Log meals on 30 different days", Target: 30, DailyLimited: true},
		{Code: "cardio_sessions", Name: "Road Runner", Description: "Log 50 cardio sessions", Target: 50},
		{Code: "training_sessions", Name: "Iron Habit", Description: "Log 50 training sessions", Target: 50},
	}
	for _, def := range defs {
		if res := achievements.UpsertDefinition(def); !res.Success {
			log.Printf("Failed to seed achievement %s: %s", def.Code, res.Message)
		}
	}
}

// Ingredients installs a handful of catalog entries so a fresh install
// answers barcode lookups. Values are per 100 grams.
func Ingredients(ctx context.Context, catalog services.IngredientCatalog) {
	ingredients := []models.Ingredient{
		{Ean: "4000417025005", Name: "Oat flakes", Calories: 372, Protein: 13.5, Carbs: 58.7, Fats: 7.0},
		{Ean: "4061458029551", Name: "Chicken breast", Calories: 110, Protein: 23.0, Carbs: 0.4, Fats: 1.5},
		{Ean: "4311501659715", Name: "Whole milk", Calories: 64, Protein: 3.3, Carbs: 4.7, Fats: 3.6},
		{Ean: "8718906124066", Name: "Peanut butter", Calories: 619, Protein: 28.0, Carbs: 12.0, Fats: 49.0},
	}
	for _, ing := range ingredients {
		if err := catalog.Put(ctx, ing); err != nil {
			log.Printf("Failed to seed ingredient %s: %v", ing.Ean, err)
		}
	}
}
