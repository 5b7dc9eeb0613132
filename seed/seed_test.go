package seed

import (
	"context"
	"testing"

	"fitlog/models"
	"fitlog/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIngredientsSurviveReseeding(t *testing.T) {
	ctx := context.Background()
	catalog := services.NewMemoryIngredientCatalog()

	Ingredients(ctx, catalog)
	Ingredients(ctx, catalog)

	ing, ok, err := catalog.ByEan(ctx, "4000417025005")
	if err != nil || !ok {
		t.Fatalf("seeded ingredient missing: ok=%v err=%v", ok, err)
	}
	if ing.Name != "Oat flakes" || ing.Calories != 372 {
		t.Errorf("unexpected seeded ingredient: %+v", ing)
	}
}

func TestAchievementsSurviveReseeding(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_achievements?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Achievement{}, &models.AchievementProgress{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := services.NewAchievementService(db, nil)

	Achievements(svc)
	Achievements(svc)

	defs, res := svc.Definitions()
	if !res.Success {
		t.Fatalf("Definitions failed: %v", res.Message)
	}
	if len(defs) != 3 {
		t.Fatalf("expected 3 seeded definitions, got %d", len(defs))
	}
	for _, def := range defs {
		if def.Code == "meals_logged" && !def.DailyLimited {
			t.Errorf("meals_logged must be daily limited")
		}
	}
}
