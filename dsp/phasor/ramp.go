package phasor

import (
	"fmt"

	"github.com/cwbudde/algo-graindelay/dsp/core"
)

// Ramp is a one-shot ramp bounded to [0, 1].
//
// After Start, the first Process call places the ramp at 0 (freq >= 0) or 1
// (freq < 0); later calls advance it by freq / sampleRate. The ramp finishes
// the instant it saturates at either bound and then holds its value until the
// next Start.
type Ramp struct {
	samplePeriod float64
	x            float64
	pending      bool
	active       bool
	reversed     bool
}

// NewRamp creates a finished ramp at 0.
func NewRamp(sampleRate float64) (*Ramp, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("ramp: %w", err)
	}
	return &Ramp{samplePeriod: 1 / sampleRate}, nil
}

// Start arms the ramp; the next Process call picks the start bound.
func (r *Ramp) Start() {
	r.pending = true
	r.active = true
}

// Stop finishes the ramp immediately, holding its current value.
func (r *Ramp) Stop() {
	r.pending = false
	r.active = false
}

// Process advances the ramp and returns its position.
func (r *Ramp) Process(freq float64) float64 {
	if !r.active {
		return r.x
	}

	if r.pending {
		r.pending = false
		r.reversed = freq < 0
		if r.reversed {
			r.x = 1
		} else {
			r.x = 0
		}
		return r.x
	}

	x := r.x + freq*r.samplePeriod
	switch {
	case x >= 1:
		x = 1
		r.active = false
	case x <= 0:
		x = 0
		r.active = false
	}
	r.x = x

	return x
}

// Progress returns how far the ramp has travelled from its start bound.
func (r *Ramp) Progress() float64 {
	if r.reversed {
		return 1 - r.x
	}
	return r.x
}

// Finished reports whether the ramp is idle.
func (r *Ramp) Finished() bool { return !r.active }
