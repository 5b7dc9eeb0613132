package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitlog/models"
	"fitlog/status"
	"fitlog/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IngredientCatalog resolves ingredients by EAN barcode.
type IngredientCatalog interface {
	ByEan(ctx context.Context, ean string) (models.Ingredient, bool, error)
	Put(ctx context.Context, ing models.Ingredient) error
}

// DietService owns per-user diet days: a rolling active window of meal lists
// plus an append-only history.
type DietService struct {
	store   *store.Store[[]models.Meal]
	catalog IngredientCatalog
	stats   *StatisticsService
}

func NewDietService(backend store.Backend[[]models.Meal], window int, catalog IngredientCatalog, stats *StatisticsService) *DietService {
	s := store.New(backend, window, func(existing, incoming []models.Meal) []models.Meal {
		return append(existing, incoming...)
	})
	return &DietService{store: s, catalog: catalog, stats: stats}
}

// AddMeal logs a meal into day `date`, rolling the window when needed, and
// accumulates the meal's calories into the user's statistics.
func (d *DietService) AddMeal(ctx context.Context, userID string, date time.Time, meal models.Meal) status.Result {
	if meal.Name == "" {
		return status.Error(status.ModelStateNotValid, "meal name is required")
	}
	if err := d.store.UpsertDay(ctx, userID, date, []models.Meal{meal}); err != nil {
		return failure(err)
	}
	if d.stats != nil {
		if res := d.stats.Accumulate(ctx, userID, models.StatCalories, models.StatisticRecord{
			Date:  store.DayOf(date),
			Value: meal.Calories(),
		}); !res.Success {
			return res
		}
	}
	return status.OK()
}

// Day returns the meals logged for one active day.
func (d *DietService) Day(ctx context.Context, userID string, date time.Time) ([]models.Meal, status.Result) {
	day, ok, err := d.store.Day(ctx, userID, date)
	if err != nil {
		return nil, failure(err)
	}
	if !ok {
		return nil, status.Error(status.NotFound, "no diet entry for that day")
	}
	return day.Payload, status.OK()
}

// ActiveDays returns the user's current window.
func (d *DietService) ActiveDays(ctx context.Context, userID string) ([]store.Day[[]models.Meal], status.Result) {
	doc, err := d.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, failure(err)
	}
	return doc.Days, status.OK()
}

// RemoveMeal deletes a meal by name from one active day.
func (d *DietService) RemoveMeal(ctx context.Context, userID string, date time.Time, mealName string) status.Result {
	err := d.store.UpdateDay(ctx, userID, date, func(meals []models.Meal) ([]models.Meal, error) {
		for i, m := range meals {
			if m.Name == mealName {
				return append(meals[:i], meals[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
	if err != nil {
		return failure(err)
	}
	return status.OK()
}

// History returns the archived diet days.
func (d *DietService) History(ctx context.Context, userID string) ([]store.Day[[]models.Meal], status.Result) {
	hist, err := d.store.History(ctx, userID)
	if err != nil {
		return nil, failure(err)
	}
	return hist.Days, status.OK()
}

// MacroBreakdown sums one macronutrient across a day's meals.
func (d *DietService) MacroBreakdown(ctx context.Context, userID string, date time.Time, component models.MacroComponent) (float64, status.Result) {
	meals, res := d.Day(ctx, userID, date)
	if !res.Success {
		return 0, res
	}
	var total float64
	for _, m := range meals {
		total += m.Macro(component)
	}
	return total, status.OK()
}

// GetIngridientByEan looks up a catalog ingredient by barcode. A missing code
// reports NotFound together with an empty ingredient.
func (d *DietService) GetIngridientByEan(ctx context.Context, ean string) (models.Ingredient, status.Result) {
	ing, ok, err := d.catalog.ByEan(ctx, ean)
	if err != nil {
		return models.Ingredient{}, failure(err)
	}
	if !ok {
		return models.Ingredient{}, status.Errorf(status.NotFound, "no ingredient with ean %s", ean)
	}
	return ing, status.OK()
}

// PutIngredient creates or replaces a catalog entry. The route guard limits
// this to admins.
func (d *DietService) PutIngredient(ctx context.Context, ing models.Ingredient) status.Result {
	if ing.Ean == "" || ing.Name == "" {
		return status.Error(status.ModelStateNotValid, "ean and name are required")
	}
	if err := d.catalog.Put(ctx, ing); err != nil {
		return failure(err)
	}
	return status.OK()
}

// mongoIngredientCatalog stores the ingredient catalog in MongoDB.
type mongoIngredientCatalog struct {
	coll *mongo.Collection
}

func NewMongoIngredientCatalog(db *mongo.Database, name string) IngredientCatalog {
	return &mongoIngredientCatalog{coll: db.Collection(name)}
}

func (c *mongoIngredientCatalog) ByEan(ctx context.Context, ean string) (models.Ingredient, bool, error) {
	var ing models.Ingredient
	err := c.coll.FindOne(ctx, bson.M{"ean": ean}).Decode(&ing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Ingredient{}, false, nil
	}
	if err != nil {
		return models.Ingredient{}, false, err
	}
	return ing, true, nil
}

func (c *mongoIngredientCatalog) Put(ctx context.Context, ing models.Ingredient) error {
	opts := options.Replace().SetUpsert(true)
	_, err := c.coll.ReplaceOne(ctx, bson.M{"ean": ing.Ean}, ing, opts)
	return err
}

// MemoryIngredientCatalog is the in-process catalog used by tests.
type MemoryIngredientCatalog struct {
	mu    sync.Mutex
	byEan map[string]models.Ingredient
}

func NewMemoryIngredientCatalog() *MemoryIngredientCatalog {
	return &MemoryIngredientCatalog{byEan: make(map[string]models.Ingredient)}
}

func (c *MemoryIngredientCatalog) ByEan(ctx context.Context, ean string) (models.Ingredient, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ing, ok := c.byEan[ean]
	return ing, ok, nil
}

func (c *MemoryIngredientCatalog) Put(ctx context.Context, ing models.Ingredient) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byEan[ing.Ean] = ing
	return nil
}
