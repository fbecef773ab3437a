package repositories

import (
	"context"
	"time"

	"github.com/ak/mps/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeRepository defines operations for recipe data access.
// GetByID and friends return (nil, nil) when the document does not exist.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	// GetByIDs returns the recipes for the given ids sorted by _id ascending.
	// Missing ids are silently skipped. The stable order makes downstream
	// consolidation deterministic.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page, limit int) ([]*models.Recipe, int64, error)
	// UpdateIngredientCalories persists the calorie cache write-back for a
	// single embedded ingredient. fdcID may be empty to leave the existing
	// food reference untouched.
	UpdateIngredientCalories(ctx context.Context, recipeID, ingredientID primitive.ObjectID, fdcID string, caloriesPerUnit float64) error
}

// MealPlanRepository defines operations for meal-plan data access
type MealPlanRepository interface {
	Create(ctx context.Context, entry *models.MealPlanEntry) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MealPlanEntry, error)
	// GetBySlot returns the entry for a singular slot on a date, or (nil, nil).
	GetBySlot(ctx context.Context, date time.Time, slot models.MealSlot) (*models.MealPlanEntry, error)
	// GetInRange returns all entries with start <= date <= end, sorted by
	// date then _id.
	GetInRange(ctx context.Context, start, end time.Time) ([]*models.MealPlanEntry, error)
	Update(ctx context.Context, entry *models.MealPlanEntry) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByRecipe(ctx context.Context, recipeID primitive.ObjectID) error
}
