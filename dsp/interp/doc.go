// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Step]:      zero-order hold (nearest preceding sample)
//   - [Linear2]:   2-point linear interpolation
//   - [Cosine2]:   2-point cosine-weighted interpolation
//   - [Lagrange4]: 4-point cubic Lagrange
//   - [Hermite4]:  4-point Catmull-Rom spline
//
// The [Mode] enum selects the kernel per read on a delay line. Every kernel
// returns x0 exactly at t == 0, so all modes agree at integer delays.
package interp
