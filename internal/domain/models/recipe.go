package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ingredient is a single ingredient line embedded in a Recipe document.
//
// FDCID references a USDA FoodData Central food. CaloriesPerUnit caches the
// calories attributable to one Unit of this ingredient (not per gram); it is
// written back after the first successful lookup so later nutrition
// calculations need no network call.
type Ingredient struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Amount          float64            `bson:"amount" json:"amount"`
	Unit            string             `bson:"unit" json:"unit"`
	FDCID           string             `bson:"fdc_id,omitempty" json:"fdc_id,omitempty"`
	CaloriesPerUnit *float64           `bson:"calories_per_unit,omitempty" json:"calories_per_unit,omitempty"`
}

// Recipe represents a recipe with its embedded ingredients
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Instructions string             `bson:"instructions" json:"instructions"`
	Servings     int                `bson:"servings" json:"servings"`
	PrepTime     int                `bson:"prep_time,omitempty" json:"prep_time,omitempty"` // in minutes
	CookTime     int                `bson:"cook_time,omitempty" json:"cook_time,omitempty"` // in minutes
	Ingredients  []Ingredient       `bson:"ingredients" json:"ingredients"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// IngredientNutrition is the per-ingredient line of a nutrition calculation.
// Calories is nil when the value could not be computed (no cached value, no
// FDC reference, unconvertible unit, or a failed lookup).
type IngredientNutrition struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Amount   float64            `json:"amount"`
	Unit     string             `json:"unit"`
	Calories *float64           `json:"calories"`
}

// RecipeNutrition summarizes calorie information for a recipe. Ingredients
// with nil Calories are excluded from TotalCalories.
type RecipeNutrition struct {
	RecipeID           primitive.ObjectID    `json:"recipe_id"`
	RecipeName         string                `json:"recipe_name"`
	Servings           int                   `json:"servings"`
	TotalCalories      float64               `json:"total_calories"`
	CaloriesPerServing float64               `json:"calories_per_serving"`
	Ingredients        []IngredientNutrition `json:"ingredients"`
}

// FoodSearchResult is one candidate food returned by a nutrient database search
type FoodSearchResult struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Brand       string         `json:"brand,omitempty"`
	Category    string         `json:"category,omitempty"`
	Nutrients   []FoodNutrient `json:"nutrients,omitempty"`
}

// FoodNutrient is a single nutrient value attached to a search result
type FoodNutrient struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// FoodDetail holds per-100g nutrient data for a single food
type FoodDetail struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
}
