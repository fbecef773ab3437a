package app

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ak/mps/internal/domain/services"
	apperrors "github.com/ak/mps/internal/pkg/errors"
	"github.com/ak/mps/internal/pkg/units"
)

func TestIngredientNutritionError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   apperrors.ErrorCode
		wantStatus int
	}{
		{
			name:       "missing recipe",
			err:        fmt.Errorf("recipe not found"),
			wantCode:   apperrors.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing ingredient",
			err:        fmt.Errorf("ingredient not found"),
			wantCode:   apperrors.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "gateway failure",
			err:        fmt.Errorf("could not calculate calories for %q: %w", "Flour", fmt.Errorf("%w: 502 Bad Gateway", services.ErrLookupFailed)),
			wantCode:   apperrors.ErrUSDAError,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "inconvertible unit",
			err:        fmt.Errorf("could not calculate calories for %q: %w", "Thyme", units.ErrNotConvertible),
			wantCode:   apperrors.ErrNotConvertible,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage failure",
			err:        fmt.Errorf("failed to update ingredient: connection reset"),
			wantCode:   apperrors.ErrDatabaseError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ingredientNutritionError(tt.err)
			if apiErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.HTTPStatus, tt.wantStatus)
			}
		})
	}
}
