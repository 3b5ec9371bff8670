// Package money holds the rounding rules shared by every monetary derivation.
package money

import "math"

// Round2 rounds an amount half away from zero to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// IsValidAmount reports whether amount is a finite, non-negative number.
func IsValidAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0
}

// AlmostEqual compares two amounts within one cent.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 0.01+1e-9
}
