package services

import (
	"context"
	"testing"
	"time"

	"fitlog/models"
	"fitlog/status"
	"fitlog/store"
)

func newDietFixture(window int) (*DietService, *MemoryIngredientCatalog, *StatisticsService) {
	catalog := NewMemoryIngredientCatalog()
	stats := NewStatisticsService(NewMemoryStatsBackend())
	diet := NewDietService(store.NewMemoryBackend[[]models.Meal](), window, catalog, stats)
	return diet, catalog, stats
}

func testMeal(name string, calories float64) models.Meal {
	return models.Meal{
		Name:     name,
		Category: models.Lunch,
		Ingredients: []models.MealIngredient{
			{Name: "test food", Grams: 100, Calories: calories, Protein: 10, Carbs: 20, Fats: 5},
		},
	}
}

func day(n int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestAddMealAccumulatesCalories(t *testing.T) {
	ctx := context.Background()
	diet, _, stats := newDietFixture(6)

	if res := diet.AddMeal(ctx, "u1", day(0), testMeal("porridge", 350)); !res.Success {
		t.Fatalf("AddMeal failed: %v", res.Message)
	}
	if res := diet.AddMeal(ctx, "u1", day(0), testMeal("salad", 150)); !res.Success {
		t.Fatalf("AddMeal failed: %v", res.Message)
	}

	doc, res := stats.Document(ctx, "u1")
	if !res.Success {
		t.Fatalf("Document failed: %v", res.Message)
	}
	if got := doc.Total(models.StatCalories).Value; got != 500 {
		t.Errorf("expected calorie counter 500, got %v", got)
	}

	meals, res := diet.Day(ctx, "u1", day(0))
	if !res.Success {
		t.Fatalf("Day failed: %v", res.Message)
	}
	if len(meals) != 2 {
		t.Errorf("expected 2 meals, got %d", len(meals))
	}
}

func TestOldestDietDayMovesToHistoryWhenWindowRolls(t *testing.T) {
	ctx := context.Background()
	diet, _, _ := newDietFixture(6)

	for i := 0; i < 7; i++ {
		if res := diet.AddMeal(ctx, "u1", day(i), testMeal("meal", 100)); !res.Success {
			t.Fatalf("AddMeal day %d failed: %v", i, res.Message)
		}
	}

	active, res := diet.ActiveDays(ctx, "u1")
	if !res.Success {
		t.Fatalf("ActiveDays failed: %v", res.Message)
	}
	if len(active) != 6 {
		t.Fatalf("expected 6 active days, got %d", len(active))
	}
	for _, d := range active {
		if d.Date.Equal(day(0)) {
			t.Errorf("oldest day still active after eviction")
		}
	}

	history, res := diet.History(ctx, "u1")
	if !res.Success {
		t.Fatalf("History failed: %v", res.Message)
	}
	if len(history) != 1 || !history[0].Date.Equal(day(0)) {
		t.Fatalf("expected day(0) in history, got %v", history)
	}
	if len(history[0].Payload) != 1 {
		t.Errorf("archived day lost its meals")
	}
}

func TestRemoveMealAbsentReportsNotFound(t *testing.T) {
	ctx := context.Background()
	diet, _, _ := newDietFixture(6)

	diet.AddMeal(ctx, "u1", day(0), testMeal("porridge", 350))

	res := diet.RemoveMeal(ctx, "u1", day(0), "pizza")
	if res.Success || res.Code != status.NotFound {
		t.Errorf("expected NotFound removing unknown meal, got %+v", res)
	}
}

func TestMacroBreakdownSumsComponent(t *testing.T) {
	ctx := context.Background()
	diet, _, _ := newDietFixture(6)

	diet.AddMeal(ctx, "u1", day(0), testMeal("a", 100))
	diet.AddMeal(ctx, "u1", day(0), testMeal("b", 100))

	protein, res := diet.MacroBreakdown(ctx, "u1", day(0), models.Protein)
	if !res.Success {
		t.Fatalf("MacroBreakdown failed: %v", res.Message)
	}
	if protein != 20 {
		t.Errorf("expected 20g protein, got %v", protein)
	}
}

func TestGetIngridientByEanKnownCode(t *testing.T) {
	ctx := context.Background()
	diet, catalog, _ := newDietFixture(6)

	catalog.Put(ctx, models.Ingredient{Ean: "4000417025005", Name: "Oat flakes", Calories: 372})

	ing, res := diet.GetIngridientByEan(ctx, "4000417025005")
	if !res.Success {
		t.Fatalf("lookup failed: %v", res.Message)
	}
	if ing.Name != "Oat flakes" {
		t.Errorf("expected oat flakes, got %q", ing.Name)
	}
}

func TestGetIngridientByEanUnknownCodeReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	diet, _, _ := newDietFixture(6)

	ing, res := diet.GetIngridientByEan(ctx, "0000000000000")
	if res.Success {
		t.Fatal("expected failure for unknown barcode")
	}
	if res.Code != status.NotFound {
		t.Errorf("expected NotFound, got %v", res.Code)
	}
	if ing != (models.Ingredient{}) {
		t.Errorf("expected empty ingredient, got %+v", ing)
	}
}
