package app

import (
	"strconv"

	apperrors "github.com/ak/mps/internal/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ==================== Food lookup handlers ====================

func (a *Application) searchFoods(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		errorResponse(c, apperrors.MissingField("query"))
		return
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	foods, err := a.gateway.Search(c.Request.Context(), query, pageSize)
	if err != nil {
		errorResponse(c, apperrors.USDAError(err))
		return
	}

	successResponse(c, gin.H{"foods": foods})
}

func (a *Application) getFood(c *gin.Context) {
	foodID := c.Param("id")

	food, err := a.gateway.Food(c.Request.Context(), foodID)
	if err != nil {
		errorResponse(c, apperrors.USDAError(err))
		return
	}

	successResponse(c, food)
}
