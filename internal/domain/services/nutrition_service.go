package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/domain/repositories"
	"github.com/ak/mps/internal/pkg/logger"
	"github.com/ak/mps/internal/pkg/units"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NutritionService computes calorie values for ingredients and recipes
type NutritionService interface {
	// CaloriesPerUnit computes the calories in one unit of a food. It returns
	// units.ErrNotConvertible when the unit has no gram equivalent and
	// ErrLookupFailed when the gateway cannot supply an energy value.
	CaloriesPerUnit(ctx context.Context, foodID, unit string) (float64, error)
	// RecipeNutrition computes per-ingredient and total calories for a recipe.
	// Ingredients that cannot be computed contribute nil calories; they never
	// fail the recipe. Successful lookups are written back to the ingredient's
	// calorie cache.
	RecipeNutrition(ctx context.Context, recipeID primitive.ObjectID) (*models.RecipeNutrition, error)
}

type nutritionService struct {
	recipeRepo repositories.RecipeRepository
	gateway    NutrientGateway
	logger     *logger.Logger
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(recipeRepo repositories.RecipeRepository, gateway NutrientGateway, log *logger.Logger) NutritionService {
	return &nutritionService{
		recipeRepo: recipeRepo,
		gateway:    gateway,
		logger:     log.WithComponent("nutrition"),
	}
}

func (s *nutritionService) CaloriesPerUnit(ctx context.Context, foodID, unit string) (float64, error) {
	caloriesPer100g, err := s.gateway.CaloriesPer100g(ctx, foodID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrLookupFailed, err)
	}

	gramsPerUnit, err := units.Grams(1, unit)
	if err != nil {
		return 0, err
	}

	return caloriesPer100g / 100 * gramsPerUnit, nil
}

func (s *nutritionService) RecipeNutrition(ctx context.Context, recipeID primitive.ObjectID) (*models.RecipeNutrition, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if recipe == nil {
		return nil, nil
	}

	result := &models.RecipeNutrition{
		RecipeID:    recipe.ID,
		RecipeName:  recipe.Name,
		Servings:    recipe.Servings,
		Ingredients: make([]models.IngredientNutrition, 0, len(recipe.Ingredients)),
	}

	for _, ing := range recipe.Ingredients {
		calories := s.ingredientCalories(ctx, recipe.ID, ing)
		result.Ingredients = append(result.Ingredients, models.IngredientNutrition{
			ID:       ing.ID,
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
			Calories: calories,
		})
		if calories != nil {
			result.TotalCalories += *calories
		}
	}

	if recipe.Servings > 0 {
		result.CaloriesPerServing = result.TotalCalories / float64(recipe.Servings)
	}

	return result, nil
}

// ingredientCalories resolves calories for one ingredient: cached value first,
// then a gateway lookup with cache write-back, nil when neither is possible.
func (s *nutritionService) ingredientCalories(ctx context.Context, recipeID primitive.ObjectID, ing models.Ingredient) *float64 {
	if ing.CaloriesPerUnit != nil {
		calories := ing.Amount * *ing.CaloriesPerUnit
		return &calories
	}

	if ing.FDCID == "" {
		return nil
	}

	perUnit, err := s.CaloriesPerUnit(ctx, ing.FDCID, ing.Unit)
	if err != nil {
		if !errors.Is(err, units.ErrNotConvertible) {
			s.logger.Warn("Calorie lookup failed",
				zap.String("ingredient", ing.Name),
				zap.String("fdc_id", ing.FDCID),
				zap.Error(err),
			)
		}
		return nil
	}

	// Compute once, remember forever. A failed write-back only costs a
	// repeat lookup next time, so it is logged and ignored.
	if err := s.recipeRepo.UpdateIngredientCalories(ctx, recipeID, ing.ID, "", perUnit); err != nil {
		s.logger.Warn("Failed to cache calories per unit",
			zap.String("ingredient", ing.Name),
			zap.Error(err),
		)
	}

	calories := ing.Amount * perUnit
	return &calories
}
