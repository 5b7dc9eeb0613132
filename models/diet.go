package models

import "fmt"

// MealCategory is the closed set of meal slots. Wire values are resolved
// once at the API boundary, never re-parsed in service code.
type MealCategory string

const (
	Breakfast MealCategory = "breakfast"
	Lunch     MealCategory = "lunch"
	Dinner    MealCategory = "dinner"
	Snack     MealCategory = "snack"
)

// ParseMealCategory resolves a wire value into a MealCategory.
func ParseMealCategory(s string) (MealCategory, error) {
	switch MealCategory(s) {
	case Breakfast, Lunch, Dinner, Snack:
		return MealCategory(s), nil
	}
	return "", fmt.Errorf("unknown meal category %q", s)
}

// MacroComponent tags one macronutrient axis.
type MacroComponent string

const (
	Protein MacroComponent = "protein"
	Carbs   MacroComponent = "carbs"
	Fats    MacroComponent = "fats"
)

// ParseMacroComponent resolves a wire value into a MacroComponent.
func ParseMacroComponent(s string) (MacroComponent, error) {
	switch MacroComponent(s) {
	case Protein, Carbs, Fats:
		return MacroComponent(s), nil
	}
	return "", fmt.Errorf("unknown macro component %q", s)
}

// Ingredient is a catalog entry looked up by EAN barcode. Macro values are
// per 100 grams.
type Ingredient struct {
	Ean      string  `bson:"ean" json:"ean"`
	Name     string  `bson:"name" json:"name"`
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
}

// MealIngredient is an ingredient portion inside a logged meal.
type MealIngredient struct {
	Ean      string  `bson:"ean,omitempty" json:"ean,omitempty"`
	Name     string  `bson:"name" json:"name"`
	Grams    float64 `bson:"grams" json:"grams"`
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
}

// Meal is one logged meal inside a diet day.
type Meal struct {
	Name        string           `bson:"name" json:"name"`
	Category    MealCategory     `bson:"category" json:"category"`
	Ingredients []MealIngredient `bson:"ingredients" json:"ingredients"`
}

// Calories sums the meal's ingredient calories.
func (m Meal) Calories() float64 {
	var total float64
	for _, ing := range m.Ingredients {
		total += ing.Calories
	}
	return total
}

// Macro sums one macronutrient across the meal's ingredients.
func (m Meal) Macro(c MacroComponent) float64 {
	var total float64
	for _, ing := range m.Ingredients {
		switch c {
		case Protein:
			total += ing.Protein
		case Carbs:
			total += ing.Carbs
		case Fats:
			total += ing.Fats
		}
	}
	return total
}
