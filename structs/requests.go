package structs

// IngredientInput is one ingredient portion inside a logged meal.
type IngredientInput struct {
	Ean      string  `json:"ean"`
	Name     string  `json:"name" binding:"required"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type AddMealRequest struct {
	Date        string            `json:"date" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Category    string            `json:"category" binding:"required"`
	Ingredients []IngredientInput `json:"ingredients"`
}

type RemoveMealRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type LogCardioRequest struct {
	Date        string  `json:"date" binding:"required"`
	Activity    string  `json:"activity" binding:"required"`
	DistanceKm  float64 `json:"distanceKm"`
	DurationSec int64   `json:"durationSec"`
	SpeedKmh    float64 `json:"speedKmh"`
}

type ExerciseSetInput struct {
	Reps     int     `json:"reps" binding:"required"`
	WeightKg float64 `json:"weightKg"`
}

type LogExerciseRequest struct {
	Date string             `json:"date" binding:"required"`
	Name string             `json:"name" binding:"required"`
	Sets []ExerciseSetInput `json:"sets" binding:"required"`
}

type RemoveExerciseRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type SaveMealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Category    string            `json:"category" binding:"required"`
	Ingredients []IngredientInput `json:"ingredients"`
}

type PublishMealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Category    string            `json:"category" binding:"required"`
	Ingredients []IngredientInput `json:"ingredients"`
}

type RecordStatisticRequest struct {
	Type        string  `json:"type" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Value       float64 `json:"value"`
	DurationSec int64   `json:"durationSec"`
}

type PutIngredientRequest struct {
	Ean      string  `json:"ean" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type UpsertAchievementRequest struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Target       int    `json:"target" binding:"required"`
	DailyLimited bool   `json:"dailyLimited"`
}

type GrantRoleRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}
