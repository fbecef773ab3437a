package repositories

import (
	"github.com/ak/mps/internal/domain/repositories"
	"github.com/ak/mps/internal/infrastructure/database"
)

// Provider holds all repository instances
type Provider struct {
	Recipe   repositories.RecipeRepository
	MealPlan repositories.MealPlanRepository
}

// NewProvider creates a new repository provider
func NewProvider(db *database.MongoDB) *Provider {
	return &Provider{
		Recipe:   NewRecipeRepository(db),
		MealPlan: NewMealPlanRepository(db),
	}
}
