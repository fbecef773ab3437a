package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/domain/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealPlanService handles meal calendar business logic
type MealPlanService interface {
	// Assign plans a recipe for a date and slot. For breakfast, lunch and
	// dinner an existing entry on the same date is replaced; snacks
	// accumulate.
	Assign(ctx context.Context, date time.Time, slot models.MealSlot, recipeID primitive.ObjectID) (*models.MealPlanEntry, error)
	Remove(ctx context.Context, entryID primitive.ObjectID) error
	EntriesInRange(ctx context.Context, start, end time.Time) ([]*models.MealPlanEntry, error)
	// Week assembles the seven DailyMealPlans starting at startDate. Entries
	// referencing deleted recipes are skipped.
	Week(ctx context.Context, startDate time.Time) (*models.WeeklyMealPlan, error)
}

type mealPlanService struct {
	mealPlanRepo repositories.MealPlanRepository
	recipeRepo   repositories.RecipeRepository
}

// NewMealPlanService creates a new meal plan service
func NewMealPlanService(mealPlanRepo repositories.MealPlanRepository, recipeRepo repositories.RecipeRepository) MealPlanService {
	return &mealPlanService{
		mealPlanRepo: mealPlanRepo,
		recipeRepo:   recipeRepo,
	}
}

// Truncate to day precision so date equality queries behave.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *mealPlanService) Assign(ctx context.Context, date time.Time, slot models.MealSlot, recipeID primitive.ObjectID) (*models.MealPlanEntry, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("invalid meal slot: %s", slot)
	}

	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate recipe: %w", err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe not found: %s", recipeID.Hex())
	}

	day := dateOnly(date)

	if slot.Singular() {
		existing, err := s.mealPlanRepo.GetBySlot(ctx, day, slot)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing entry: %w", err)
		}
		if existing != nil {
			existing.RecipeID = recipeID
			if err := s.mealPlanRepo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("failed to replace entry: %w", err)
			}
			return existing, nil
		}
	}

	entry := &models.MealPlanEntry{
		Date:     day,
		Slot:     slot,
		RecipeID: recipeID,
	}
	if err := s.mealPlanRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

func (s *mealPlanService) Remove(ctx context.Context, entryID primitive.ObjectID) error {
	entry, err := s.mealPlanRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("meal plan entry not found")
	}
	return s.mealPlanRepo.Delete(ctx, entryID)
}

func (s *mealPlanService) EntriesInRange(ctx context.Context, start, end time.Time) ([]*models.MealPlanEntry, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	return s.mealPlanRepo.GetInRange(ctx, dateOnly(start), dateOnly(end))
}

func (s *mealPlanService) Week(ctx context.Context, startDate time.Time) (*models.WeeklyMealPlan, error) {
	start := dateOnly(startDate)
	end := start.AddDate(0, 0, 6)

	entries, err := s.mealPlanRepo.GetInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}

	days := make([]models.DailyMealPlan, 7)
	index := make(map[time.Time]*models.DailyMealPlan, 7)
	for i := range days {
		days[i] = models.DailyMealPlan{
			Date:   start.AddDate(0, 0, i),
			Snacks: []models.PlannedMeal{},
		}
		index[days[i].Date] = &days[i]
	}

	for _, entry := range entries {
		day, ok := index[dateOnly(entry.Date)]
		if !ok {
			continue
		}

		recipe, err := s.recipeRepo.GetByID(ctx, entry.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipe: %w", err)
		}
		if recipe == nil {
			continue
		}

		meal := models.PlannedMeal{
			EntryID:    entry.ID,
			RecipeID:   recipe.ID,
			RecipeName: recipe.Name,
		}

		switch entry.Slot {
		case models.MealSlotBreakfast:
			day.Breakfast = &meal
		case models.MealSlotLunch:
			day.Lunch = &meal
		case models.MealSlotDinner:
			day.Dinner = &meal
		case models.MealSlotSnack:
			day.Snacks = append(day.Snacks, meal)
		}
	}

	return &models.WeeklyMealPlan{
		StartDate: start,
		EndDate:   end,
		Days:      days,
	}, nil
}
