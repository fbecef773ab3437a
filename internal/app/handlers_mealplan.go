package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/ak/mps/internal/domain/models"
	apperrors "github.com/ak/mps/internal/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ==================== Meal plan handlers ====================

type AssignMealPlanRequest struct {
	Date     string `json:"date" binding:"required"`
	Slot     string `json:"slot" binding:"required"`
	RecipeID string `json:"recipe_id" binding:"required"`
}

func (a *Application) assignMealPlan(c *gin.Context) {
	var req AssignMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		errorResponse(c, apperrors.InvalidInput("Invalid date, expected YYYY-MM-DD"))
		return
	}

	recipeID, err := primitive.ObjectIDFromHex(req.RecipeID)
	if err != nil {
		errorResponse(c, apperrors.InvalidID("Invalid recipe_id format"))
		return
	}

	entry, err := a.mealPlan.Assign(c.Request.Context(), date, models.MealSlot(req.Slot), recipeID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			errorResponse(c, apperrors.New(apperrors.ErrNotFound, err.Error(), http.StatusNotFound))
			return
		}
		errorResponse(c, apperrors.Validation(err.Error()))
		return
	}

	createdResponse(c, entry)
}

func (a *Application) removeMealPlan(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.mealPlan.Remove(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			errorResponse(c, apperrors.NotFound("Meal plan entry"))
			return
		}
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, gin.H{"deleted": id.Hex()})
}

func (a *Application) listMealPlanEntries(c *gin.Context) {
	start, end, ok := getDateRange(c)
	if !ok {
		return
	}

	entries, err := a.mealPlan.EntriesInRange(c.Request.Context(), start, end)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, entries)
}

func (a *Application) getWeeklyMealPlan(c *gin.Context) {
	startStr := c.Query("start_date")
	var start time.Time
	if startStr == "" {
		start = time.Now().UTC()
	} else {
		var err error
		start, err = time.ParseInLocation(dateLayout, startStr, time.UTC)
		if err != nil {
			errorResponse(c, apperrors.InvalidInput("Invalid start_date, expected YYYY-MM-DD"))
			return
		}
	}

	week, err := a.mealPlan.Week(c.Request.Context(), start)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, week)
}
