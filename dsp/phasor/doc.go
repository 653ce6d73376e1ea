// Package phasor provides the clock sources of the grain scheduler: a
// wrapping phase accumulator, a one-sample differencer used as an edge
// detector, and a bounded one-shot ramp.
//
// All types are real-time safe (no allocation after construction) and not
// thread-safe.
package phasor
