package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ak/mps/internal/domain/services"
	apperrors "github.com/ak/mps/internal/pkg/errors"
	"github.com/ak/mps/internal/pkg/units"
	"github.com/gin-gonic/gin"
)

// ==================== Recipe handlers ====================

func (a *Application) listRecipes(c *gin.Context) {
	page, limit := getPagination(c)

	recipes, total, err := a.recipes.List(c.Request.Context(), page, limit)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	paginatedResponse(c, recipes, page, limit, total)
}

func (a *Application) createRecipe(c *gin.Context) {
	var req services.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	recipe, err := a.recipes.Create(c.Request.Context(), req)
	if err != nil {
		errorResponse(c, apperrors.Validation(err.Error()))
		return
	}

	createdResponse(c, recipe)
}

func (a *Application) getRecipe(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	recipe, err := a.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if recipe == nil {
		errorResponse(c, apperrors.NotFound("Recipe"))
		return
	}

	successResponse(c, recipe)
}

func (a *Application) updateRecipe(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	recipe, err := a.recipes.Update(c.Request.Context(), id, req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			errorResponse(c, apperrors.NotFound("Recipe"))
			return
		}
		errorResponse(c, apperrors.Validation(err.Error()))
		return
	}

	successResponse(c, recipe)
}

func (a *Application) deleteRecipe(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.recipes.Delete(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			errorResponse(c, apperrors.NotFound("Recipe"))
			return
		}
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, gin.H{"deleted": id.Hex()})
}

func (a *Application) getRecipeNutrition(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	nutrition, err := a.nutrition.RecipeNutrition(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if nutrition == nil {
		errorResponse(c, apperrors.NotFound("Recipe"))
		return
	}

	successResponse(c, nutrition)
}

type UpdateIngredientNutritionRequest struct {
	FDCID string `json:"fdc_id" binding:"required"`
}

// ingredientNutritionError maps an UpdateIngredientNutrition failure to its
// API error: gateway failures are the upstream's fault (502), an
// inconvertible unit is the caller's (400).
func ingredientNutritionError(err error) *apperrors.APIError {
	switch {
	case strings.Contains(err.Error(), "not found"):
		return apperrors.New(apperrors.ErrNotFound, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrLookupFailed):
		return apperrors.USDAError(err)
	case errors.Is(err, units.ErrNotConvertible):
		return apperrors.NotConvertible(err.Error())
	default:
		return apperrors.DatabaseError(err)
	}
}

func (a *Application) updateIngredientNutrition(c *gin.Context) {
	recipeID, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := getObjectID(c, "ingredientID")
	if !ok {
		return
	}

	var req UpdateIngredientNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	ingredient, err := a.recipes.UpdateIngredientNutrition(c.Request.Context(), recipeID, ingredientID, req.FDCID)
	if err != nil {
		errorResponse(c, ingredientNutritionError(err))
		return
	}

	successResponse(c, ingredient)
}
