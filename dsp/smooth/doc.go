// Package smooth provides per-sample parameter smoothers.
//
// A smoother moves its current value towards a target once per Next call so
// that control changes reach the signal path without audible steps:
//   - Linear: constant step, reaches the target after sampleRate/frequency
//     samples and stops exactly on it.
//   - Exponential: one-pole low-pass with b = exp(-2π·frequency/sampleRate).
//   - Logarithmic: one-pole glide parameterized by its half-life in seconds.
//
// Smoothers never allocate and are not safe for concurrent use.
package smooth
