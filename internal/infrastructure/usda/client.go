package usda

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/domain/services"
	"github.com/ak/mps/internal/infrastructure/config"
	"github.com/ak/mps/internal/pkg/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FoodData Central nutrient numbers
const (
	NutrientEnergy  = 1008 // kcal
	NutrientProtein = 1003
	NutrientFat     = 1004
	NutrientCarbs   = 1005
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// ErrNutrientNotFound is returned when a food record exists but carries no
// energy value.
var ErrNutrientNotFound = errors.New("nutrient not found in food record")

// Client talks to the USDA FoodData Central API. It implements
// services.NutrientGateway. No retries; failures surface to the caller.
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

var _ services.NutrientGateway = (*Client)(nil)

// NewClient creates a new FoodData Central client
func NewClient(cfg config.USDAConfig, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParam("api_key", cfg.APIKey)

	return &Client{
		http:   httpClient,
		logger: log.WithComponent("usda"),
	}
}

// foodResponse is the subset of a /food/{id} payload we consume
type foodResponse struct {
	FDCID       int64  `json:"fdcId"`
	Description string `json:"description"`
	Nutrients   []struct {
		Nutrient struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
		Amount *float64 `json:"amount"`
	} `json:"foodNutrients"`
}

// searchResponse is the subset of a /foods/search payload we consume
type searchResponse struct {
	TotalHits int `json:"totalHits"`
	Foods     []struct {
		FDCID        int64  `json:"fdcId"`
		Description  string `json:"description"`
		BrandOwner   string `json:"brandOwner"`
		FoodCategory string `json:"foodCategory"`
		Nutrients    []struct {
			NutrientID   int     `json:"nutrientId"`
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
			UnitName     string  `json:"unitName"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

func (c *Client) fetchFood(ctx context.Context, foodID string) (*foodResponse, error) {
	var food foodResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&food).
		SetPathParam("id", foodID).
		Get("/food/{id}")
	if err != nil {
		return nil, fmt.Errorf("food request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("food request returned %s", resp.Status())
	}
	return &food, nil
}

func (c *Client) CaloriesPer100g(ctx context.Context, foodID string) (float64, error) {
	food, err := c.fetchFood(ctx, foodID)
	if err != nil {
		return 0, err
	}

	for _, n := range food.Nutrients {
		if n.Nutrient.ID == NutrientEnergy && n.Amount != nil {
			return *n.Amount, nil
		}
	}

	c.logger.Debug("Food record has no energy value", zap.String("fdc_id", foodID))
	return 0, ErrNutrientNotFound
}

func (c *Client) Food(ctx context.Context, foodID string) (*models.FoodDetail, error) {
	food, err := c.fetchFood(ctx, foodID)
	if err != nil {
		return nil, err
	}

	detail := &models.FoodDetail{
		ID:          strconv.FormatInt(food.FDCID, 10),
		Description: food.Description,
	}
	for _, n := range food.Nutrients {
		if n.Nutrient.ID == NutrientEnergy && n.Amount != nil {
			detail.CaloriesPer100g = *n.Amount
			break
		}
	}
	return detail, nil
}

func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]models.FoodSearchResult, error) {
	if pageSize < 1 {
		pageSize = defaultPageSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var result searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetQueryParam("query", query).
		SetQueryParam("pageSize", strconv.Itoa(pageSize)).
		// Standard reference data only; branded foods are too noisy for
		// ingredient matching.
		SetQueryParamsFromValues(map[string][]string{
			"dataType": {"Foundation", "SR Legacy"},
		}).
		Get("/foods/search")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search request returned %s", resp.Status())
	}

	foods := make([]models.FoodSearchResult, 0, len(result.Foods))
	for _, f := range result.Foods {
		food := models.FoodSearchResult{
			ID:          strconv.FormatInt(f.FDCID, 10),
			Description: f.Description,
			Brand:       f.BrandOwner,
			Category:    f.FoodCategory,
		}
		for _, n := range f.Nutrients {
			switch n.NutrientID {
			case NutrientEnergy, NutrientProtein, NutrientFat, NutrientCarbs:
				food.Nutrients = append(food.Nutrients, models.FoodNutrient{
					ID:     n.NutrientID,
					Name:   n.NutrientName,
					Amount: n.Value,
					Unit:   n.UnitName,
				})
			}
		}
		foods = append(foods, food)
	}

	return foods, nil
}
