package app

import (
	"net/http"
	"strings"

	"github.com/ak/mps/internal/app/middleware"
	"github.com/ak/mps/internal/domain/services"
	"github.com/ak/mps/internal/infrastructure/config"
	"github.com/ak/mps/internal/infrastructure/database"
	"github.com/ak/mps/internal/infrastructure/repositories"
	"github.com/ak/mps/internal/infrastructure/usda"
	"github.com/ak/mps/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Application holds all application dependencies and services
type Application struct {
	config    *config.Config
	logger    *logger.Logger
	mongodb   *database.MongoDB
	repos     *repositories.Provider
	gateway   services.NutrientGateway
	recipes   services.RecipeService
	mealPlan  services.MealPlanService
	shopping  services.ShoppingService
	nutrition services.NutritionService
	router    *gin.Engine
}

// New creates a new Application instance
func New(cfg *config.Config, log *logger.Logger, mongodb *database.MongoDB) (*Application, error) {
	repos := repositories.NewProvider(mongodb)
	gateway := usda.NewClient(cfg.USDA, log)

	nutrition := services.NewNutritionService(repos.Recipe, gateway, log)

	app := &Application{
		config:    cfg,
		logger:    log,
		mongodb:   mongodb,
		repos:     repos,
		gateway:   gateway,
		nutrition: nutrition,
		recipes:   services.NewRecipeService(repos.Recipe, repos.MealPlan, nutrition),
		mealPlan:  services.NewMealPlanService(repos.MealPlan, repos.Recipe),
		shopping:  services.NewShoppingService(repos.Recipe, repos.MealPlan, log),
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	app.router = gin.New()

	// Add middleware
	app.router.Use(middleware.Recovery(log.Logger))
	app.router.Use(middleware.RequestID())
	app.router.Use(middleware.Logger(log.Logger))
	app.router.Use(app.corsMiddleware())

	// Setup routes
	app.setupRoutes()

	return app, nil
}

// Router returns the HTTP handler
func (a *Application) Router() http.Handler {
	return a.router
}

// setupRoutes configures all application routes
func (a *Application) setupRoutes() {
	// Health check endpoints
	a.router.GET("/health", a.healthCheck)
	a.router.GET("/ready", a.readinessCheck)

	v1 := a.router.Group("/api/v1")
	{
		// Recipe catalog
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", a.listRecipes)
			recipes.POST("", a.createRecipe)
			recipes.GET("/:id", a.getRecipe)
			recipes.PUT("/:id", a.updateRecipe)
			recipes.DELETE("/:id", a.deleteRecipe)
			recipes.GET("/:id/nutrition", a.getRecipeNutrition)
			recipes.POST("/:id/ingredients/:ingredientID/nutrition", a.updateIngredientNutrition)
		}

		// Meal calendar
		mealplans := v1.Group("/mealplans")
		{
			mealplans.GET("", a.listMealPlanEntries)
			mealplans.POST("", a.assignMealPlan)
			mealplans.DELETE("/:id", a.removeMealPlan)
			mealplans.GET("/week", a.getWeeklyMealPlan)
		}

		// Shopping list derivation
		v1.GET("/shopping-list", a.getShoppingList)

		// Nutrient database passthrough
		foods := v1.Group("/foods")
		{
			foods.GET("/search", a.searchFoods)
			foods.GET("/:id", a.getFood)
		}
	}
}

// Middleware

func (a *Application) corsMiddleware() gin.HandlerFunc {
	allowedMethods := strings.Join(a.config.CORS.AllowedMethods, ", ")
	allowedHeaders := strings.Join(a.config.CORS.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
