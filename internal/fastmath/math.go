//go:build !fastmath

package fastmath

import "math"

// Sin returns sin(x).
func Sin(x float64) float64 {
	return math.Sin(x)
}

// Cos returns cos(x).
func Cos(x float64) float64 {
	return math.Cos(x)
}

// Exp returns e^x.
func Exp(x float64) float64 {
	return math.Exp(x)
}

// Exp2 returns 2^x.
func Exp2(x float64) float64 {
	return math.Exp2(x)
}
