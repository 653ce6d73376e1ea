package interp

import "math"

// Mode selects a fractional-delay interpolation kernel.
type Mode int

const (
	// Step holds the nearest preceding sample.
	Step Mode = iota
	// Linear blends the two bracketing samples.
	Linear
	// Cosine blends the two bracketing samples with a raised-cosine weight.
	Cosine
	// Cubic is 4-point Lagrange interpolation.
	Cubic
	// Spline is 4-point Catmull-Rom interpolation.
	Spline
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Step:
		return "step"
	case Linear:
		return "linear"
	case Cosine:
		return "cosine"
	case Cubic:
		return "cubic"
	case Spline:
		return "spline"
	default:
		return "unknown"
	}
}

// Points returns the number of buffer samples the kernel touches.
func (m Mode) Points() int {
	switch m {
	case Cubic, Spline:
		return 4
	case Step:
		return 1
	default:
		return 2
	}
}

// MinDelay returns the smallest delay in samples a delay line may read with
// this kernel without touching the cell about to be overwritten.
func (m Mode) MinDelay() float64 {
	if m.Points() == 4 {
		return 2
	}
	return 1
}

// ParseMode maps a kernel name as returned by String back to its Mode.
func ParseMode(name string) (Mode, bool) {
	for m := Step; m <= Spline; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return Linear, false
}

// Linear2 interpolates from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0*(1-t) + x1*t
}

// Cosine2 interpolates from x0 to x1 with weight (1 - cos(πt)) / 2.
func Cosine2(t, x0, x1 float64) float64 {
	if t == 0 {
		return x0
	}
	w := (1 - math.Cos(t*math.Pi)) * 0.5
	return x0*(1-w) + x1*w
}

// Lagrange4 computes 4-point, 3rd-order Lagrange interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Lagrange4(t, xm1, x0, x1, x2 float64) float64 {
	a1 := 1 + t
	aa := t * a1
	b := 1 - t
	b1 := 2 - t
	bb := b * b1

	fw := -bb * t / 6
	fx := 0.5 * bb * a1
	fy := 0.5 * aa * b1
	fz := -aa * b / 6
	return xm1*fw + x0*fx + x1*fy + x2*fz
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
