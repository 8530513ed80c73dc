package domain

import "github.com/shopspring/decimal"

// Round2 rounds a money or share figure to 2 decimal places, half up.
// Rounding goes through decimal to keep display precision reproducible
// regardless of float representation.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round4 rounds an earnings figure to 4 decimal places, half up.
func Round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
