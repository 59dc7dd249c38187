package nutrition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedUnit indicates a measurement unit outside the conversion table.
var ErrUnsupportedUnit = errors.New("unsupported unit")

// unitToGrams converts a measurement unit to grams. Volume units assume a
// density of 1 g/ml, which holds for water-based liquids.
var unitToGrams = map[string]float64{
	"g":     1.0,
	"oz":    28.35,
	"ml":    1.0,
	"fl_oz": 29.57,
}

// unitOrder keeps catalog output and error messages stable.
var unitOrder = []string{"g", "oz", "ml", "fl_oz"}

// Units returns the supported measurement unit tokens, mass units first.
func Units() []string {
	units := make([]string, len(unitOrder))
	copy(units, unitOrder)
	return units
}

// ConvertToGrams converts an amount in the given unit to grams.
func ConvertToGrams(amount float64, unit string) (float64, error) {
	factor, ok := unitToGrams[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q, supported units are: %s", ErrUnsupportedUnit, unit, strings.Join(unitOrder, ", "))
	}
	return amount * factor, nil
}
