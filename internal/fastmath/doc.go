// Package fastmath provides the transcendental functions used on the
// per-sample paths of the grain delay.
//
// The default build routes every call to the standard library. Building with
// the fastmath tag swaps in approximations:
//
//	go build -tags fastmath ./...
//
// # Accuracy Characteristics
//
// Exp, Exp2: algo-approx FastExp, <0.1% relative error for x ∈ [-10, 10]
//
// Sin, Cos: refined parabolic approximation, <0.001 absolute error for any
// finite input
//
// Callers must tolerate the precision of either build.
package fastmath
