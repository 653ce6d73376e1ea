package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
	"github.com/cwbudde/algo-graindelay/dsp/phasor"
	"github.com/cwbudde/algo-graindelay/internal/fastmath"
)

// crossfadeHz is the rate of the crossfade ramp; one crossfade lasts 200 ms.
const crossfadeHz = 5.0

// VariableLine is a delay line whose read time may change at any sample.
//
// When the requested time differs from the current one and no crossfade is
// running, the output blends from the old read position to the new one with
//
//	w = cos²(ramp·π/2),  out = w·read(previous) + (1−w)·read(next)
//
// over 200 ms instead of jumping the read pointer. Time changes requested
// while a crossfade runs are picked up once it has finished.
type VariableLine struct {
	line       *Line
	ramp       *phasor.Ramp
	previousMs float64
	nextMs     float64
}

// NewVariable returns a variable delay line holding at least size samples.
func NewVariable(size int, opts ...Option) (*VariableLine, error) {
	line, err := New(size, opts...)
	if err != nil {
		return nil, err
	}

	ramp, err := phasor.NewRamp(line.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("variable delay: %w", err)
	}

	return &VariableLine{line: line, ramp: ramp}, nil
}

// Line returns the wrapped delay line.
func (v *VariableLine) Line() *Line { return v.line }

// Time returns the delay time in milliseconds the line settles on.
func (v *VariableLine) Time() float64 { return v.nextMs }

// Crossfading reports whether a crossfade is in progress.
func (v *VariableLine) Crossfading() bool { return !v.ramp.Finished() }

// Write writes one sample.
func (v *VariableLine) Write(sample float64) {
	v.line.Write(sample)
}

// Read returns the delayed sample for the requested time in milliseconds.
func (v *VariableLine) Read(ms float64, mode interp.Mode) float64 {
	if math.IsNaN(ms) {
		ms = v.nextMs
	}

	if v.ramp.Finished() {
		if ms == v.nextMs {
			return v.line.ReadMs(ms, mode)
		}
		v.previousMs = v.nextMs
		v.nextMs = ms
		v.ramp.Start()
	}

	return v.crossfade(mode)
}

// SetTime moves the read time without a crossfade, cancelling any running one.
func (v *VariableLine) SetTime(ms float64) {
	if math.IsNaN(ms) {
		return
	}
	v.ramp.Stop()
	v.previousMs = ms
	v.nextMs = ms
}

// Reset clears the buffer and the read time.
func (v *VariableLine) Reset() {
	v.line.Reset()
	v.SetTime(0)
}

func (v *VariableLine) crossfade(mode interp.Mode) float64 {
	ramp := v.ramp.Process(crossfadeHz)
	w := fastmath.Cos(ramp * math.Pi / 2)
	w *= w

	return core.Lerp(v.line.ReadMs(v.nextMs, mode), v.line.ReadMs(v.previousMs, mode), w)
}
