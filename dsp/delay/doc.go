// Package delay provides circular delay lines with per-read selectable
// fractional interpolation, and a variable delay line that crossfades
// between read positions when its delay time changes.
//
// Buffers are allocated once at construction; Write and every Read variant
// are allocation-free. Types are not thread-safe.
package delay
