package units

import (
	"errors"
	"strings"
)

// ErrNotConvertible is returned when a unit has no gram equivalent in the
// conversion table. Callers are expected to degrade (e.g. report calories
// as unknown) rather than fail the surrounding computation.
var ErrNotConvertible = errors.New("unit not convertible to grams")

// gramsPerUnit maps a measurement unit to its weight in grams.
// Volume units (cup, tbsp, tsp, ml, l) assume water-like density; this is a
// known approximation inherited from the nutrition data source, not a bug.
var gramsPerUnit = map[string]float64{
	"g":    1,
	"kg":   1000,
	"oz":   28.35,
	"lb":   453.592,
	"cup":  240,
	"tbsp": 15,
	"tsp":  5,
	"ml":   1,
	"l":    1000,
}

// Grams converts an amount in the given unit to grams. The unit token is
// matched case-insensitively. Units outside the table return ErrNotConvertible.
func Grams(amount float64, unit string) (float64, error) {
	factor, ok := gramsPerUnit[strings.ToLower(unit)]
	if !ok {
		return 0, ErrNotConvertible
	}
	return amount * factor, nil
}

// Convertible reports whether the unit has a gram equivalent.
func Convertible(unit string) bool {
	_, ok := gramsPerUnit[strings.ToLower(unit)]
	return ok
}
