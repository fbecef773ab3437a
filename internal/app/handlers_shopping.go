package app

import (
	"errors"

	"github.com/ak/mps/internal/domain/services"
	apperrors "github.com/ak/mps/internal/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ==================== Shopping list handlers ====================

func (a *Application) getShoppingList(c *gin.Context) {
	start, end, ok := getDateRange(c)
	if !ok {
		return
	}

	categorized := c.DefaultQuery("categorized", "false") == "true"

	if categorized {
		list, err := a.shopping.GenerateCategorizedList(c.Request.Context(), start, end)
		if err != nil {
			a.shoppingError(c, err)
			return
		}
		successResponse(c, list)
		return
	}

	list, err := a.shopping.GenerateList(c.Request.Context(), start, end)
	if err != nil {
		a.shoppingError(c, err)
		return
	}
	successResponse(c, list)
}

func (a *Application) shoppingError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidRange) {
		errorResponse(c, apperrors.InvalidRange("end_date is before start_date"))
		return
	}
	errorResponse(c, apperrors.DatabaseError(err))
}
