package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	return logger.Global()
}

// fakeRecipeRepo is an in-memory RecipeRepository
type fakeRecipeRepo struct {
	recipes     map[primitive.ObjectID]*models.Recipe
	cacheWrites int
}

func newFakeRecipeRepo(recipes ...*models.Recipe) *fakeRecipeRepo {
	repo := &fakeRecipeRepo{recipes: make(map[primitive.ObjectID]*models.Recipe)}
	for _, r := range recipes {
		if r.ID.IsZero() {
			r.ID = primitive.NewObjectID()
		}
		repo.recipes[r.ID] = r
	}
	return repo
}

func (f *fakeRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = primitive.NewObjectID()
	f.recipes[recipe.ID] = recipe
	return nil
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	return f.recipes[id], nil
}

func (f *fakeRecipeRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Recipe, error) {
	var out []*models.Recipe
	for _, id := range ids {
		if r, ok := f.recipes[id]; ok {
			out = append(out, r)
		}
	}
	// Same contract as the mongo implementation: _id ascending.
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, recipe *models.Recipe) error {
	f.recipes[recipe.ID] = recipe
	return nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) List(ctx context.Context, page, limit int) ([]*models.Recipe, int64, error) {
	var out []*models.Recipe
	for _, r := range f.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepo) UpdateIngredientCalories(ctx context.Context, recipeID, ingredientID primitive.ObjectID, fdcID string, caloriesPerUnit float64) error {
	recipe, ok := f.recipes[recipeID]
	if !ok {
		return fmt.Errorf("recipe not found")
	}
	for i := range recipe.Ingredients {
		if recipe.Ingredients[i].ID == ingredientID {
			v := caloriesPerUnit
			recipe.Ingredients[i].CaloriesPerUnit = &v
			if fdcID != "" {
				recipe.Ingredients[i].FDCID = fdcID
			}
			f.cacheWrites++
			return nil
		}
	}
	return fmt.Errorf("ingredient not found")
}

// fakeMealPlanRepo is an in-memory MealPlanRepository
type fakeMealPlanRepo struct {
	entries map[primitive.ObjectID]*models.MealPlanEntry
}

func newFakeMealPlanRepo() *fakeMealPlanRepo {
	return &fakeMealPlanRepo{entries: make(map[primitive.ObjectID]*models.MealPlanEntry)}
}

func (f *fakeMealPlanRepo) Create(ctx context.Context, entry *models.MealPlanEntry) error {
	entry.ID = primitive.NewObjectID()
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeMealPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MealPlanEntry, error) {
	return f.entries[id], nil
}

func (f *fakeMealPlanRepo) GetBySlot(ctx context.Context, date time.Time, slot models.MealSlot) (*models.MealPlanEntry, error) {
	for _, e := range f.entries {
		if e.Date.Equal(date) && e.Slot == slot {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeMealPlanRepo) GetInRange(ctx context.Context, start, end time.Time) ([]*models.MealPlanEntry, error) {
	var out []*models.MealPlanEntry
	for _, e := range f.entries {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (f *fakeMealPlanRepo) Update(ctx context.Context, entry *models.MealPlanEntry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeMealPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.entries, id)
	return nil
}

func (f *fakeMealPlanRepo) DeleteByRecipe(ctx context.Context, recipeID primitive.ObjectID) error {
	for id, e := range f.entries {
		if e.RecipeID == recipeID {
			delete(f.entries, id)
		}
	}
	return nil
}

// fakeGateway is a scripted NutrientGateway
type fakeGateway struct {
	caloriesPer100g map[string]float64
	err             error
	calls           int
}

func (f *fakeGateway) CaloriesPer100g(ctx context.Context, foodID string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	v, ok := f.caloriesPer100g[foodID]
	if !ok {
		return 0, fmt.Errorf("food %s not found", foodID)
	}
	return v, nil
}

func (f *fakeGateway) Search(ctx context.Context, query string, pageSize int) ([]models.FoodSearchResult, error) {
	return nil, f.err
}

func (f *fakeGateway) Food(ctx context.Context, foodID string) (*models.FoodDetail, error) {
	return nil, f.err
}
