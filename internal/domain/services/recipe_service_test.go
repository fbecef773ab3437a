package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/pkg/units"
)

func newRecipeServiceForTest(recipeRepo *fakeRecipeRepo, planRepo *fakeMealPlanRepo, gateway *fakeGateway) RecipeService {
	nutrition := NewNutritionService(recipeRepo, gateway, testLogger())
	return NewRecipeService(recipeRepo, planRepo, nutrition)
}

func TestCreateRecipe(t *testing.T) {
	recipeRepo := newFakeRecipeRepo()
	svc := newRecipeServiceForTest(recipeRepo, newFakeMealPlanRepo(), &fakeGateway{})

	recipe, err := svc.Create(context.Background(), CreateRecipeRequest{
		Name:         "Pancakes",
		Instructions: "Mix and fry.",
		Servings:     4,
		Ingredients: []IngredientRequest{
			{Name: "Flour", Amount: 2, Unit: "cup"},
			{Name: "Milk", Amount: 300, Unit: "ml"},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if recipe.ID.IsZero() {
		t.Error("expected assigned recipe ID")
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(recipe.Ingredients))
	}
	for _, ing := range recipe.Ingredients {
		if ing.ID.IsZero() {
			t.Errorf("ingredient %s has no ID", ing.Name)
		}
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	svc := newRecipeServiceForTest(newFakeRecipeRepo(), newFakeMealPlanRepo(), &fakeGateway{})

	valid := CreateRecipeRequest{
		Name:         "Pancakes",
		Instructions: "Mix and fry.",
		Servings:     4,
		Ingredients:  []IngredientRequest{{Name: "Flour", Amount: 2, Unit: "cup"}},
	}

	tests := []struct {
		name   string
		mutate func(*CreateRecipeRequest)
	}{
		{"missing name", func(r *CreateRecipeRequest) { r.Name = "" }},
		{"zero servings", func(r *CreateRecipeRequest) { r.Servings = 0 }},
		{"no ingredients", func(r *CreateRecipeRequest) { r.Ingredients = nil }},
		{"negative amount", func(r *CreateRecipeRequest) { r.Ingredients[0].Amount = -1 }},
		{"missing unit", func(r *CreateRecipeRequest) { r.Ingredients[0].Unit = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.Ingredients = []IngredientRequest{valid.Ingredients[0]}
			tt.mutate(&req)
			if _, err := svc.Create(context.Background(), req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdateRecipePartial(t *testing.T) {
	recipe := &models.Recipe{
		Name:         "Pancakes",
		Instructions: "Mix and fry.",
		Servings:     4,
		Ingredients:  []models.Ingredient{{Name: "Flour", Amount: 2, Unit: "cup"}},
	}
	recipeRepo := newFakeRecipeRepo(recipe)
	svc := newRecipeServiceForTest(recipeRepo, newFakeMealPlanRepo(), &fakeGateway{})

	updated, err := svc.Update(context.Background(), recipe.ID, UpdateRecipeRequest{Servings: 6})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Servings != 6 {
		t.Errorf("expected 6 servings, got %d", updated.Servings)
	}
	if updated.Name != "Pancakes" {
		t.Errorf("name should be untouched, got %q", updated.Name)
	}
	if len(updated.Ingredients) != 1 {
		t.Errorf("ingredients should be untouched, got %d", len(updated.Ingredients))
	}
}

func TestDeleteRecipeRemovesMealPlanEntries(t *testing.T) {
	recipe := &models.Recipe{Name: "Pasta"}
	other := &models.Recipe{Name: "Soup"}
	recipeRepo := newFakeRecipeRepo(recipe, other)
	planRepo := newFakeMealPlanRepo()
	svc := newRecipeServiceForTest(recipeRepo, planRepo, &fakeGateway{})

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	planRepo.Create(context.Background(), &models.MealPlanEntry{Date: day, Slot: models.MealSlotDinner, RecipeID: recipe.ID})
	planRepo.Create(context.Background(), &models.MealPlanEntry{Date: day, Slot: models.MealSlotLunch, RecipeID: other.ID})

	if err := svc.Delete(context.Background(), recipe.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(planRepo.entries) != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", len(planRepo.entries))
	}
	for _, e := range planRepo.entries {
		if e.RecipeID != other.ID {
			t.Error("wrong entry survived the cascade")
		}
	}
}

func TestUpdateIngredientNutrition(t *testing.T) {
	recipe := &models.Recipe{
		Name:     "Pancakes",
		Servings: 4,
		Ingredients: []models.Ingredient{
			{Name: "Flour", Amount: 2, Unit: "cup"},
		},
	}
	recipeRepo := newFakeRecipeRepo(recipe)
	recipe.Ingredients[0].ID = mustObjectID(t, "65f0000000000000000000aa")
	gateway := &fakeGateway{caloriesPer100g: map[string]float64{"169761": 364}}
	svc := newRecipeServiceForTest(recipeRepo, newFakeMealPlanRepo(), gateway)

	ing, err := svc.UpdateIngredientNutrition(context.Background(), recipe.ID, recipe.Ingredients[0].ID, "169761")
	if err != nil {
		t.Fatalf("UpdateIngredientNutrition failed: %v", err)
	}

	// 364 kcal per 100 g, one cup is 240 g.
	want := 364.0 / 100.0 * 240.0
	if ing.CaloriesPerUnit == nil || *ing.CaloriesPerUnit != want {
		t.Errorf("expected %v calories per unit, got %v", want, ing.CaloriesPerUnit)
	}
	if ing.FDCID != "169761" {
		t.Errorf("expected fdc id persisted, got %q", ing.FDCID)
	}
	if recipeRepo.cacheWrites != 1 {
		t.Errorf("expected 1 cache write, got %d", recipeRepo.cacheWrites)
	}

	stored := recipeRepo.recipes[recipe.ID].Ingredients[0]
	if stored.CaloriesPerUnit == nil || *stored.CaloriesPerUnit != want {
		t.Error("expected stored ingredient updated")
	}
}

func TestUpdateIngredientNutritionNotConvertible(t *testing.T) {
	recipe := &models.Recipe{
		Name:        "Stew",
		Servings:    2,
		Ingredients: []models.Ingredient{{Name: "Thyme", Amount: 1, Unit: "sprig"}},
	}
	recipeRepo := newFakeRecipeRepo(recipe)
	recipe.Ingredients[0].ID = mustObjectID(t, "65f0000000000000000000ab")
	gateway := &fakeGateway{caloriesPer100g: map[string]float64{"170938": 101}}
	svc := newRecipeServiceForTest(recipeRepo, newFakeMealPlanRepo(), gateway)

	_, err := svc.UpdateIngredientNutrition(context.Background(), recipe.ID, recipe.Ingredients[0].ID, "170938")
	if !errors.Is(err, units.ErrNotConvertible) {
		t.Errorf("expected ErrNotConvertible, got %v", err)
	}
	if recipeRepo.cacheWrites != 0 {
		t.Errorf("expected no cache write, got %d", recipeRepo.cacheWrites)
	}
}
