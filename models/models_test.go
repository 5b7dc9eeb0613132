package models

import "testing"

func TestMealCaloriesAndMacros(t *testing.T) {
	meal := Meal{
		Name:     "bowl",
		Category: Lunch,
		Ingredients: []MealIngredient{
			{Name: "rice", Grams: 150, Calories: 195, Protein: 4, Carbs: 42, Fats: 0.5},
			{Name: "chicken", Grams: 120, Calories: 132, Protein: 27.5, Carbs: 0.5, Fats: 1.75},
		},
	}

	if got := meal.Calories(); got != 327 {
		t.Errorf("Calories() = %v, want 327", got)
	}
	if got := meal.Macro(Protein); got != 31.5 {
		t.Errorf("Macro(Protein) = %v, want 31.5", got)
	}
	if got := meal.Macro(Carbs); got != 42.5 {
		t.Errorf("Macro(Carbs) = %v, want 42.5", got)
	}
}

func TestBestSetPrefersWeightThenReps(t *testing.T) {
	ex := Exercise{
		Name: "bench",
		Sets: []ExerciseSet{
			{WeightKg: 80, Reps: 8},
			{WeightKg: 90, Reps: 3},
			{WeightKg: 90, Reps: 5},
		},
	}
	best, ok := ex.BestSet()
	if !ok {
		t.Fatal("expected a best set")
	}
	if best.WeightKg != 90 || best.Reps != 5 {
		t.Errorf("BestSet() = %+v, want 90kg x5", best)
	}

	empty := Exercise{Name: "empty"}
	if _, ok := empty.BestSet(); ok {
		t.Error("expected no best set for empty exercise")
	}
}

func TestParsersRejectUnknownValues(t *testing.T) {
	if _, err := ParseMealCategory("brunch"); err == nil {
		t.Error("expected unknown meal category to fail")
	}
	if _, err := ParseActivityType("skiing"); err == nil {
		t.Error("expected unknown activity to fail")
	}
	if _, err := ParseStatisticType("mood"); err == nil {
		t.Error("expected unknown statistic type to fail")
	}
	if _, err := ParseMacroComponent("fiber"); err == nil {
		t.Error("expected unknown macro component to fail")
	}
	if _, err := ParseMealFilter("newest"); err == nil {
		t.Error("expected unknown meal filter to fail")
	}
}

func TestCumulativeTypes(t *testing.T) {
	if StatWeight.Cumulative() {
		t.Error("weight is a point-in-time measurement")
	}
	for _, typ := range []StatisticType{StatCalories, StatSteps, StatDistance, StatTimeSpent, StatSessionCount} {
		if !typ.Cumulative() {
			t.Errorf("%s should be cumulative", typ)
		}
	}
}
