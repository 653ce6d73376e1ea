package phasor

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
)

// Phasor is a wrapping phase accumulator producing a periodic ramp in [0, 1).
//
// Each call advances the phase by freq / sampleRate. Negative frequencies
// run the ramp downward; the output stays in [0, 1) either way.
type Phasor struct {
	samplePeriod float64
	x            float64
}

// New creates a phasor at phase 0.
func New(sampleRate float64) (*Phasor, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("phasor: %w", err)
	}
	return &Phasor{samplePeriod: 1 / sampleRate}, nil
}

// Process advances the phase and returns it.
func (p *Phasor) Process(freq float64) float64 {
	if !core.IsFinite(freq) {
		return p.x
	}

	x := p.x + freq*p.samplePeriod
	if x >= 1 || x < 0 {
		x -= math.Floor(x)
		// x - floor(x) rounds to 1 for tiny negative x.
		if x >= 1 {
			x = 0
		}
	}
	p.x = x

	return x
}

// Phase returns the current phase without advancing it.
func (p *Phasor) Phase() float64 { return p.x }

// Reset rewinds the phase to 0.
func (p *Phasor) Reset() { p.x = 0 }

// Delta is a one-sample differencer. A negative output after a rising
// phasor marks a wraparound.
type Delta struct {
	z float64
}

// Process returns x minus the previous input.
func (d *Delta) Process(x float64) float64 {
	out := x - d.z
	d.z = x
	return out
}

// Reset clears the stored input.
func (d *Delta) Reset() { d.z = 0 }
