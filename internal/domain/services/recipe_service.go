package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/domain/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeService handles recipe business logic
type RecipeService interface {
	Create(ctx context.Context, req CreateRecipeRequest) (*models.Recipe, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	Update(ctx context.Context, id primitive.ObjectID, req UpdateRecipeRequest) (*models.Recipe, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page, limit int) ([]*models.Recipe, int64, error)
	// UpdateIngredientNutrition binds an ingredient to a FoodData Central
	// food and caches its calories-per-unit for the ingredient's unit.
	UpdateIngredientNutrition(ctx context.Context, recipeID, ingredientID primitive.ObjectID, fdcID string) (*models.Ingredient, error)
}

type IngredientRequest struct {
	Name            string   `json:"name" binding:"required"`
	Amount          float64  `json:"amount" binding:"required,gt=0"`
	Unit            string   `json:"unit" binding:"required"`
	FDCID           string   `json:"fdc_id"`
	CaloriesPerUnit *float64 `json:"calories_per_unit"`
}

type CreateRecipeRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	Instructions string              `json:"instructions" binding:"required"`
	Servings     int                 `json:"servings" binding:"required,gt=0"`
	PrepTime     int                 `json:"prep_time"`
	CookTime     int                 `json:"cook_time"`
	Ingredients  []IngredientRequest `json:"ingredients" binding:"required,min=1"`
}

type UpdateRecipeRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Instructions string              `json:"instructions"`
	Servings     int                 `json:"servings"`
	PrepTime     int                 `json:"prep_time"`
	CookTime     int                 `json:"cook_time"`
	Ingredients  []IngredientRequest `json:"ingredients"`
}

type recipeService struct {
	recipeRepo   repositories.RecipeRepository
	mealPlanRepo repositories.MealPlanRepository
	nutrition    NutritionService
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipeRepo repositories.RecipeRepository, mealPlanRepo repositories.MealPlanRepository, nutrition NutritionService) RecipeService {
	return &recipeService{
		recipeRepo:   recipeRepo,
		mealPlanRepo: mealPlanRepo,
		nutrition:    nutrition,
	}
}

func buildIngredients(reqs []IngredientRequest) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(reqs))
	for _, r := range reqs {
		if r.Name == "" {
			return nil, fmt.Errorf("ingredient name is required")
		}
		if r.Amount <= 0 {
			return nil, fmt.Errorf("ingredient amount must be positive: %s", r.Name)
		}
		if r.Unit == "" {
			return nil, fmt.Errorf("ingredient unit is required: %s", r.Name)
		}
		ingredients = append(ingredients, models.Ingredient{
			ID:              primitive.NewObjectID(),
			Name:            r.Name,
			Amount:          r.Amount,
			Unit:            r.Unit,
			FDCID:           r.FDCID,
			CaloriesPerUnit: r.CaloriesPerUnit,
		})
	}
	return ingredients, nil
}

func (s *recipeService) Create(ctx context.Context, req CreateRecipeRequest) (*models.Recipe, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("recipe name is required")
	}
	if req.Servings <= 0 {
		return nil, fmt.Errorf("servings must be positive")
	}
	if len(req.Ingredients) == 0 {
		return nil, fmt.Errorf("recipe must have at least one ingredient")
	}

	ingredients, err := buildIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		Servings:     req.Servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Ingredients:  ingredients,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return recipe, nil
}

func (s *recipeService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

func (s *recipeService) Update(ctx context.Context, id primitive.ObjectID, req UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe not found")
	}

	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if req.Instructions != "" {
		recipe.Instructions = req.Instructions
	}
	if req.Servings > 0 {
		recipe.Servings = req.Servings
	}
	if req.PrepTime > 0 {
		recipe.PrepTime = req.PrepTime
	}
	if req.CookTime > 0 {
		recipe.CookTime = req.CookTime
	}
	if req.Ingredients != nil {
		ingredients, err := buildIngredients(req.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	recipe.UpdatedAt = time.Now()

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	return recipe, nil
}

func (s *recipeService) Delete(ctx context.Context, id primitive.ObjectID) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return fmt.Errorf("recipe not found")
	}

	// Orphaned calendar entries would silently drop out of shopping lists;
	// remove them together with the recipe.
	if err := s.mealPlanRepo.DeleteByRecipe(ctx, id); err != nil {
		return fmt.Errorf("failed to remove meal plan entries: %w", err)
	}

	return s.recipeRepo.Delete(ctx, id)
}

func (s *recipeService) List(ctx context.Context, page, limit int) ([]*models.Recipe, int64, error) {
	return s.recipeRepo.List(ctx, page, limit)
}

func (s *recipeService) UpdateIngredientNutrition(ctx context.Context, recipeID, ingredientID primitive.ObjectID, fdcID string) (*models.Ingredient, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe not found")
	}

	var target *models.Ingredient
	for i := range recipe.Ingredients {
		if recipe.Ingredients[i].ID == ingredientID {
			target = &recipe.Ingredients[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("ingredient not found")
	}

	perUnit, err := s.nutrition.CaloriesPerUnit(ctx, fdcID, target.Unit)
	if err != nil {
		return nil, fmt.Errorf("could not calculate calories for %q: %w", target.Name, err)
	}

	if err := s.recipeRepo.UpdateIngredientCalories(ctx, recipeID, ingredientID, fdcID, perUnit); err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}

	target.FDCID = fdcID
	target.CaloriesPerUnit = &perUnit
	return target, nil
}
