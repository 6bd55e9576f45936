package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds value to places decimal places, halves away from zero.
// The value is taken at its shortest decimal representation, so 1.005
// rounds to 1.01 rather than to the 1.00 a binary float multiply gives.
func Round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}

// roundDecimal rounds an exact decimal sum and converts it for output.
func roundDecimal(value decimal.Decimal, places int32) float64 {
	f, _ := value.Round(places).Float64()
	return f
}
