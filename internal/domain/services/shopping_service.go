package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/domain/repositories"
	"github.com/ak/mps/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ShoppingService derives consolidated shopping lists from the meal plan
type ShoppingService interface {
	// GenerateList builds the consolidated shopping list for all meals
	// planned between start and end (inclusive). An empty plan yields an
	// empty list; end before start returns ErrInvalidRange.
	GenerateList(ctx context.Context, start, end time.Time) (*models.ShoppingList, error)
	// GenerateCategorizedList groups the consolidated list into food-group
	// categories. Empty categories are omitted.
	GenerateCategorizedList(ctx context.Context, start, end time.Time) (*models.ShoppingListByCategory, error)
	// Consolidate merges ingredient amounts across the given recipes. The
	// recipe order determines which surface casing wins for merged items, so
	// callers must pass a deterministically ordered slice.
	Consolidate(recipes []*models.Recipe) []models.ShoppingItem
}

type shoppingService struct {
	recipeRepo   repositories.RecipeRepository
	mealPlanRepo repositories.MealPlanRepository
	logger       *logger.Logger
}

// NewShoppingService creates a new shopping service
func NewShoppingService(recipeRepo repositories.RecipeRepository, mealPlanRepo repositories.MealPlanRepository, log *logger.Logger) ShoppingService {
	return &shoppingService{
		recipeRepo:   recipeRepo,
		mealPlanRepo: mealPlanRepo,
		logger:       log.WithComponent("shopping"),
	}
}

func (s *shoppingService) GenerateList(ctx context.Context, start, end time.Time) (*models.ShoppingList, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	entries, err := s.mealPlanRepo.GetInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}

	recipeIDs := make([]primitive.ObjectID, 0, len(entries))
	seen := make(map[primitive.ObjectID]bool)
	for _, entry := range entries {
		if !seen[entry.RecipeID] {
			seen[entry.RecipeID] = true
			recipeIDs = append(recipeIDs, entry.RecipeID)
		}
	}

	recipes, err := s.recipeRepo.GetByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	s.logger.Debug("Generating shopping list",
		zap.Int("entries", len(entries)),
		zap.Int("recipes", len(recipes)),
	)

	return &models.ShoppingList{
		StartDate: start,
		EndDate:   end,
		Items:     s.Consolidate(recipes),
	}, nil
}

func (s *shoppingService) GenerateCategorizedList(ctx context.Context, start, end time.Time) (*models.ShoppingListByCategory, error) {
	list, err := s.GenerateList(ctx, start, end)
	if err != nil {
		return nil, err
	}

	categories := make(map[string][]models.ShoppingItem)
	for _, item := range list.Items {
		cat := CategoryFor(item.Name)
		categories[cat] = append(categories[cat], item)
	}

	return &models.ShoppingListByCategory{
		StartDate:  start,
		EndDate:    end,
		Categories: categories,
	}, nil
}

// consolidationKey identifies mergeable shopping items
type consolidationKey struct {
	name string
	unit string
}

func (s *shoppingService) Consolidate(recipes []*models.Recipe) []models.ShoppingItem {
	merged := make(map[consolidationKey]*models.ShoppingItem)
	contributors := make(map[consolidationKey]map[string]bool)

	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			key := consolidationKey{
				name: strings.ToLower(ing.Name),
				unit: strings.ToLower(ing.Unit),
			}

			if item, ok := merged[key]; ok {
				item.Amount += ing.Amount
			} else {
				// First occurrence wins for the displayed casing of both
				// name and unit.
				merged[key] = &models.ShoppingItem{
					Name:   ing.Name,
					Amount: ing.Amount,
					Unit:   ing.Unit,
				}
				contributors[key] = make(map[string]bool)
			}
			contributors[key][recipe.Name] = true
		}
	}

	items := make([]models.ShoppingItem, 0, len(merged))
	for key, item := range merged {
		names := make([]string, 0, len(contributors[key]))
		for name := range contributors[key] {
			names = append(names, name)
		}
		sort.Strings(names)
		item.Recipes = names
		items = append(items, *item)
	}

	// Same name in different units yields separate entries, so tie-break
	// by unit to keep the order deterministic.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})

	return items
}
