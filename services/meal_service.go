package services

import (
	"context"
	"sort"
	"time"

	"fitlog/models"
	"fitlog/status"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MealService owns saved meals and the published community feed.
type MealService struct {
	saved     *mongo.Collection
	published *mongo.Collection
}

func NewMealService(db *mongo.Database) *MealService {
	return &MealService{
		saved:     db.Collection("saved_meals"),
		published: db.Collection("published_meals"),
	}
}

// EnsureMealIndexes creates the unique (userId, name) index for saved meals.
func EnsureMealIndexes(ctx context.Context, db *mongo.Database) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := db.Collection("saved_meals").Indexes().CreateOne(ctx, model)
	return err
}

// SaveMeal stores a private reusable meal. Duplicate names conflict.
func (m *MealService) SaveMeal(ctx context.Context, userID, name string, meal models.Meal) status.Result {
	if name == "" {
		return status.Error(status.ModelStateNotValid, "meal name is required")
	}

	doc := models.SavedMeal{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      name,
		Meal:      meal,
		CreatedAt: time.Now(),
	}
	_, err := m.saved.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return status.Errorf(status.AlreadyExists, "saved meal %q already exists", name)
	}
	if err != nil {
		return failure(err)
	}
	return status.OK()
}

// SavedMeals lists a user's saved meals.
func (m *MealService) SavedMeals(ctx context.Context, userID string) ([]models.SavedMeal, status.Result) {
	cursor, err := m.saved.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, failure(err)
	}
	defer cursor.Close(ctx)

	var meals []models.SavedMeal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, failure(err)
	}
	return meals, status.OK()
}

// DeleteSavedMeal removes one saved meal. Deleting another user's meal is
// impossible by construction: the filter carries the owner.
func (m *MealService) DeleteSavedMeal(ctx context.Context, userID, name string) status.Result {
	res, err := m.saved.DeleteOne(ctx, bson.M{"userId": userID, "name": name})
	if err != nil {
		return failure(err)
	}
	if res.DeletedCount == 0 {
		return status.Errorf(status.NotFound, "no saved meal %q", name)
	}
	return status.OK()
}

// PublishMeal shares a meal with the community.
func (m *MealService) PublishMeal(ctx context.Context, userID, name string, meal models.Meal, category models.MealCategory) (models.PublishedMeal, status.Result) {
	if name == "" {
		return models.PublishedMeal{}, status.Error(status.ModelStateNotValid, "meal name is required")
	}

	doc := models.PublishedMeal{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      name,
		Meal:      meal,
		Category:  category,
		LikedBy:   []string{},
		CreatedAt: time.Now(),
	}
	if _, err := m.published.InsertOne(ctx, doc); err != nil {
		return models.PublishedMeal{}, failure(err)
	}
	return doc, status.OK()
}

// UnpublishMeal removes a published meal. Only the publisher may remove it.
func (m *MealService) UnpublishMeal(ctx context.Context, userID string, mealID primitive.ObjectID) status.Result {
	var doc models.PublishedMeal
	err := m.published.FindOne(ctx, bson.M{"_id": mealID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return status.Error(status.NotFound, "published meal not found")
	}
	if err != nil {
		return failure(err)
	}
	if doc.UserID != userID {
		return status.Error(status.Forbidden, "cannot remove another user's meal")
	}

	res, err := m.published.DeleteOne(ctx, bson.M{"_id": mealID, "userId": userID})
	if err != nil {
		return failure(err)
	}
	if res.DeletedCount == 0 {
		return status.Error(status.Failed, "delete matched no document")
	}
	return status.OK()
}

// LikeMeal adds the caller to a published meal's likes. Liking twice is a
// no-op on the set; the counter only moves when the set grew.
func (m *MealService) LikeMeal(ctx context.Context, userID string, mealID primitive.ObjectID) status.Result {
	res, err := m.published.UpdateOne(ctx,
		bson.M{"_id": mealID},
		bson.M{"$addToSet": bson.M{"likedBy": userID}},
	)
	if err != nil {
		return failure(err)
	}
	if res.MatchedCount == 0 {
		return status.Error(status.NotFound, "published meal not found")
	}
	if res.ModifiedCount > 0 {
		_, err = m.published.UpdateOne(ctx, bson.M{"_id": mealID}, bson.M{"$inc": bson.M{"likeCount": 1}})
		if err != nil {
			return failure(err)
		}
	}
	return status.OK()
}

// UnlikeMeal removes the caller from a published meal's likes.
func (m *MealService) UnlikeMeal(ctx context.Context, userID string, mealID primitive.ObjectID) status.Result {
	res, err := m.published.UpdateOne(ctx,
		bson.M{"_id": mealID},
		bson.M{"$pull": bson.M{"likedBy": userID}},
	)
	if err != nil {
		return failure(err)
	}
	if res.MatchedCount == 0 {
		return status.Error(status.NotFound, "published meal not found")
	}
	if res.ModifiedCount > 0 {
		_, err = m.published.UpdateOne(ctx, bson.M{"_id": mealID}, bson.M{"$inc": bson.M{"likeCount": -1}})
		if err != nil {
			return failure(err)
		}
	}
	return status.OK()
}

// Browse lists published meals, optionally narrowed to a category, ordered
// per the filter.
func (m *MealService) Browse(ctx context.Context, filter models.MealFilter, category *models.MealCategory) ([]models.PublishedMeal, status.Result) {
	query := bson.M{}
	if category != nil {
		query["category"] = *category
	}

	cursor, err := m.published.Find(ctx, query)
	if err != nil {
		return nil, failure(err)
	}
	defer cursor.Close(ctx)

	var meals []models.PublishedMeal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, failure(err)
	}

	switch filter {
	case models.FilterMostLiked:
		sort.SliceStable(meals, func(i, j int) bool {
			return meals[i].LikeCount > meals[j].LikeCount
		})
	default:
		sort.SliceStable(meals, func(i, j int) bool {
			return meals[i].CreatedAt.After(meals[j].CreatedAt)
		})
	}
	return meals, status.OK()
}
