package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedMeal is a user's private reusable meal. Name is unique per user.
type SavedMeal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Meal      Meal               `bson:"meal" json:"meal"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PublishedMeal is a meal shared with the community.
type PublishedMeal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Meal      Meal               `bson:"meal" json:"meal"`
	Category  MealCategory       `bson:"category" json:"category"`
	LikedBy   []string           `bson:"likedBy" json:"-"`
	LikeCount int                `bson:"likeCount" json:"likeCount"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MealFilter is the closed set of published-meal browse orders.
type MealFilter string

const (
	FilterAll       MealFilter = "all"
	FilterMostLiked MealFilter = "most-liked"
)

// ParseMealFilter resolves a wire value into a MealFilter.
func ParseMealFilter(s string) (MealFilter, error) {
	switch MealFilter(s) {
	case FilterAll, FilterMostLiked:
		return MealFilter(s), nil
	}
	return "", fmt.Errorf("unknown meal filter %q", s)
}
