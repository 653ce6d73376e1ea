//go:build fastmath

package fastmath

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// ln2 is the natural logarithm of 2, used for base conversions.
const ln2 = 0.693147180559945309417232121458

const (
	parabolaB = 4 / math.Pi
	parabolaC = -4 / (math.Pi * math.Pi)
	parabolaP = 0.225
)

// Sin approximates sin(x) with a refined parabola after wrapping x into [-π, π].
func Sin(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	x -= math.Pi

	y := parabolaB*x + parabolaC*x*math.Abs(x)
	return parabolaP*(y*math.Abs(y)-y) + y
}

// Cos approximates cos(x) as sin(x + π/2).
func Cos(x float64) float64 {
	return Sin(x + math.Pi/2)
}

// Exp approximates e^x.
func Exp(x float64) float64 {
	return approx.FastExp(x)
}

// Exp2 approximates 2^x using the identity 2^x = e^(x * ln(2)).
func Exp2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
