package units

import (
	"errors"
	"testing"
)

func TestGrams(t *testing.T) {
	tests := []struct {
		amount float64
		unit   string
		want   float64
	}{
		{2, "kg", 2000},
		{3, "tbsp", 45},
		{1, "g", 1},
		{1, "oz", 28.35},
		{2, "lb", 907.184},
		{0.5, "cup", 120},
		{4, "tsp", 20},
		{250, "ml", 250},
		{1.5, "l", 1500},
	}

	for _, tt := range tests {
		got, err := Grams(tt.amount, tt.unit)
		if err != nil {
			t.Errorf("Grams(%v, %q) returned error: %v", tt.amount, tt.unit, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Grams(%v, %q) = %v, want %v", tt.amount, tt.unit, got, tt.want)
		}
	}
}

func TestGramsCaseInsensitive(t *testing.T) {
	for _, unit := range []string{"KG", "Kg", "TBSP", "Cup"} {
		if _, err := Grams(1, unit); err != nil {
			t.Errorf("Grams(1, %q) returned error: %v", unit, err)
		}
	}
}

func TestGramsNotConvertible(t *testing.T) {
	for _, unit := range []string{"mile", "handful", "pinch", ""} {
		_, err := Grams(1, unit)
		if !errors.Is(err, ErrNotConvertible) {
			t.Errorf("Grams(1, %q) = %v, want ErrNotConvertible", unit, err)
		}
	}
}

func TestConvertible(t *testing.T) {
	if !Convertible("ML") {
		t.Error("Convertible(\"ML\") = false, want true")
	}
	if Convertible("handful") {
		t.Error("Convertible(\"handful\") = true, want false")
	}
}
