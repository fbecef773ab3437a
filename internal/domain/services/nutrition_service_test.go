package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/pkg/units"
)

func floatPtr(v float64) *float64 { return &v }

func TestCaloriesPerUnit(t *testing.T) {
	gateway := &fakeGateway{caloriesPer100g: map[string]float64{"1001": 364}}
	svc := NewNutritionService(newFakeRecipeRepo(), gateway, testLogger())

	// 364 kcal/100g, one cup is 240 g.
	got, err := svc.CaloriesPerUnit(context.Background(), "1001", "cup")
	if err != nil {
		t.Fatalf("CaloriesPerUnit failed: %v", err)
	}
	want := 364.0 / 100 * 240
	if got != want {
		t.Errorf("CaloriesPerUnit = %v, want %v", got, want)
	}
}

func TestCaloriesPerUnitNotConvertible(t *testing.T) {
	gateway := &fakeGateway{caloriesPer100g: map[string]float64{"1001": 364}}
	svc := NewNutritionService(newFakeRecipeRepo(), gateway, testLogger())

	_, err := svc.CaloriesPerUnit(context.Background(), "1001", "handful")
	if !errors.Is(err, units.ErrNotConvertible) {
		t.Errorf("expected ErrNotConvertible, got %v", err)
	}
}

func TestCaloriesPerUnitLookupFailed(t *testing.T) {
	gateway := &fakeGateway{err: fmt.Errorf("connection refused")}
	svc := NewNutritionService(newFakeRecipeRepo(), gateway, testLogger())

	_, err := svc.CaloriesPerUnit(context.Background(), "1001", "cup")
	if !errors.Is(err, ErrLookupFailed) {
		t.Errorf("expected ErrLookupFailed, got %v", err)
	}
}

func TestRecipeNutritionUsesCache(t *testing.T) {
	recipe := &models.Recipe{
		Name:     "Oatmeal",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{Name: "Oats", Amount: 2, Unit: "cup", CaloriesPerUnit: floatPtr(300)},
		},
	}
	repo := newFakeRecipeRepo(recipe)
	recipe.Ingredients[0].ID = mustObjectID(t, "65f0000000000000000000a1")
	gateway := &fakeGateway{err: fmt.Errorf("gateway must not be called")}
	svc := NewNutritionService(repo, gateway, testLogger())

	result, err := svc.RecipeNutrition(context.Background(), recipe.ID)
	if err != nil {
		t.Fatalf("RecipeNutrition failed: %v", err)
	}

	if gateway.calls != 0 {
		t.Errorf("expected no gateway calls, got %d", gateway.calls)
	}
	if result.TotalCalories != 600 {
		t.Errorf("TotalCalories = %v, want 600", result.TotalCalories)
	}
	if result.CaloriesPerServing != 300 {
		t.Errorf("CaloriesPerServing = %v, want 300", result.CaloriesPerServing)
	}
}

func TestRecipeNutritionWriteBackRoundTrip(t *testing.T) {
	recipe := &models.Recipe{
		Name:     "Rice Bowl",
		Servings: 4,
		Ingredients: []models.Ingredient{
			{ID: mustObjectID(t, "65f0000000000000000000b1"), Name: "Rice", Amount: 2, Unit: "cup", FDCID: "2002"},
		},
	}
	repo := newFakeRecipeRepo(recipe)
	gateway := &fakeGateway{caloriesPer100g: map[string]float64{"2002": 130}}
	svc := NewNutritionService(repo, gateway, testLogger())

	first, err := svc.RecipeNutrition(context.Background(), recipe.ID)
	if err != nil {
		t.Fatalf("first RecipeNutrition failed: %v", err)
	}
	if gateway.calls != 1 {
		t.Fatalf("expected 1 gateway call, got %d", gateway.calls)
	}
	if repo.cacheWrites != 1 {
		t.Fatalf("expected 1 cache write, got %d", repo.cacheWrites)
	}

	// Second run must be served entirely from the cached value.
	gateway.err = fmt.Errorf("gateway gone")
	second, err := svc.RecipeNutrition(context.Background(), recipe.ID)
	if err != nil {
		t.Fatalf("second RecipeNutrition failed: %v", err)
	}
	if gateway.calls != 1 {
		t.Errorf("expected no further gateway calls, got %d", gateway.calls)
	}
	if second.TotalCalories != first.TotalCalories {
		t.Errorf("cached total %v differs from computed total %v", second.TotalCalories, first.TotalCalories)
	}
}

func TestRecipeNutritionPartialFailure(t *testing.T) {
	recipe := &models.Recipe{
		Name:     "Trail Mix",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{ID: mustObjectID(t, "65f0000000000000000000c1"), Name: "Peanuts", Amount: 1, Unit: "cup", FDCID: "3001"},
			// Unit outside the conversion table: contributes nil calories.
			{ID: mustObjectID(t, "65f0000000000000000000c2"), Name: "Raisins", Amount: 1, Unit: "handful", FDCID: "3002"},
			// No food reference and no cache: nil as well.
			{ID: mustObjectID(t, "65f0000000000000000000c3"), Name: "Secret Spice", Amount: 1, Unit: "tsp"},
		},
	}
	repo := newFakeRecipeRepo(recipe)
	gateway := &fakeGateway{caloriesPer100g: map[string]float64{"3001": 567, "3002": 299}}
	svc := NewNutritionService(repo, gateway, testLogger())

	result, err := svc.RecipeNutrition(context.Background(), recipe.ID)
	if err != nil {
		t.Fatalf("RecipeNutrition failed: %v", err)
	}

	if len(result.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredient lines, got %d", len(result.Ingredients))
	}
	if result.Ingredients[0].Calories == nil {
		t.Error("Peanuts calories should be computed")
	}
	if result.Ingredients[1].Calories != nil {
		t.Errorf("Raisins calories should be nil, got %v", *result.Ingredients[1].Calories)
	}
	if result.Ingredients[2].Calories != nil {
		t.Errorf("Secret Spice calories should be nil, got %v", *result.Ingredients[2].Calories)
	}

	want := 567.0 / 100 * 240
	if result.TotalCalories != want {
		t.Errorf("TotalCalories = %v, want %v", result.TotalCalories, want)
	}
}

func TestRecipeNutritionZeroServings(t *testing.T) {
	recipe := &models.Recipe{
		Name:     "Mystery",
		Servings: 0,
		Ingredients: []models.Ingredient{
			{Name: "Sugar", Amount: 1, Unit: "cup", CaloriesPerUnit: floatPtr(770)},
		},
	}
	repo := newFakeRecipeRepo(recipe)
	svc := NewNutritionService(repo, &fakeGateway{}, testLogger())

	result, err := svc.RecipeNutrition(context.Background(), recipe.ID)
	if err != nil {
		t.Fatalf("RecipeNutrition failed: %v", err)
	}
	if result.TotalCalories != 770 {
		t.Errorf("TotalCalories = %v, want 770", result.TotalCalories)
	}
	if result.CaloriesPerServing != 0 {
		t.Errorf("CaloriesPerServing = %v, want 0", result.CaloriesPerServing)
	}
}

func TestRecipeNutritionGatewayFailureTolerated(t *testing.T) {
	recipe := &models.Recipe{
		Name:     "Smoothie",
		Servings: 1,
		Ingredients: []models.Ingredient{
			{ID: mustObjectID(t, "65f0000000000000000000d1"), Name: "Banana", Amount: 1, Unit: "cup", FDCID: "4001"},
			{ID: mustObjectID(t, "65f0000000000000000000d2"), Name: "Milk", Amount: 1, Unit: "cup", CaloriesPerUnit: floatPtr(150)},
		},
	}
	repo := newFakeRecipeRepo(recipe)
	gateway := &fakeGateway{err: fmt.Errorf("timeout")}
	svc := NewNutritionService(repo, gateway, testLogger())

	result, err := svc.RecipeNutrition(context.Background(), recipe.ID)
	if err != nil {
		t.Fatalf("RecipeNutrition failed: %v", err)
	}
	if result.Ingredients[0].Calories != nil {
		t.Error("Banana calories should be nil after gateway failure")
	}
	if result.TotalCalories != 150 {
		t.Errorf("TotalCalories = %v, want 150", result.TotalCalories)
	}
}

func TestRecipeNutritionUnknownRecipe(t *testing.T) {
	svc := NewNutritionService(newFakeRecipeRepo(), &fakeGateway{}, testLogger())

	result, err := svc.RecipeNutrition(context.Background(), mustObjectID(t, "65f0000000000000000000ff"))
	if err != nil {
		t.Fatalf("RecipeNutrition failed: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for unknown recipe, got %+v", result)
	}
}
