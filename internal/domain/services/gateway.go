package services

import (
	"context"
	"errors"

	"github.com/ak/mps/internal/domain/models"
)

// ErrLookupFailed wraps any nutrient gateway failure: transport errors,
// non-2xx responses, or a food record without an energy value. Callers
// degrade to unknown calories instead of failing the computation.
var ErrLookupFailed = errors.New("nutrient lookup failed")

// ErrInvalidRange is returned when a date range ends before it starts.
var ErrInvalidRange = errors.New("end date before start date")

// NutrientGateway is the external nutrient database boundary. Implementations
// do not retry internally; they surface failures as errors and leave timeout
// policy to their HTTP client configuration.
type NutrientGateway interface {
	// CaloriesPer100g returns the energy value (kcal per 100 g) for a food.
	CaloriesPer100g(ctx context.Context, foodID string) (float64, error)
	// Search returns candidate foods matching the free-text query.
	Search(ctx context.Context, query string, pageSize int) ([]models.FoodSearchResult, error)
	// Food returns description and calories for a single food.
	Food(ctx context.Context, foodID string) (*models.FoodDetail, error)
}
