package graindelay

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParam is returned by Params.Validate for out-of-range controls.
var ErrInvalidParam = errors.New("invalid parameter")

// Params are the user controls of a GrainDelay. They may change on every
// call; speed, filter, feedback and mix are smoothed internally.
//
// Filter is a low-pass cutoff while Pitch is above zero and a high-pass
// cutoff otherwise.
type Params struct {
	Spray     float64 // ms, [0, 500]
	Frequency float64 // Hz, [1, 150]
	Pitch     float64 // semitones, [-24, 24]
	Drift     float64 // [0, 1]
	Reverse   float64 // [0, 1]
	Time      float64 // echo time in ms, [0, 5000]
	Feedback  float64 // [0, 1]
	Filter    float64 // tone cutoff in Hz, [20, 20000]; 0 bypasses
	Spread    float64 // [0, 1]
	Mix       float64 // [0, 1]
}

// DefaultParams returns the factory settings.
func DefaultParams() Params {
	return Params{
		Spray:     2,
		Frequency: 7,
		Pitch:     12,
		Mix:       0.5,
	}
}

type paramRange struct {
	name     string
	min, max float64
	value    func(Params) float64
}

var paramRanges = [...]paramRange{
	{"spray", 0, MaxSpray, func(p Params) float64 { return p.Spray }},
	{"frequency", MinFrequency, MaxFrequency, func(p Params) float64 { return p.Frequency }},
	{"pitch", -MaxPitch, MaxPitch, func(p Params) float64 { return p.Pitch }},
	{"drift", 0, 1, func(p Params) float64 { return p.Drift }},
	{"reverse", 0, 1, func(p Params) float64 { return p.Reverse }},
	{"time", 0, MaxEchoTime, func(p Params) float64 { return p.Time }},
	{"feedback", 0, 1, func(p Params) float64 { return p.Feedback }},
	{"spread", 0, 1, func(p Params) float64 { return p.Spread }},
	{"mix", 0, 1, func(p Params) float64 { return p.Mix }},
}

// Validate reports every control outside its documented range.
func (p Params) Validate() error {
	var errs []error
	for _, r := range paramRanges {
		if v := r.value(p); !(v >= r.min && v <= r.max) {
			errs = append(errs, fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrInvalidParam, r.name, v, r.min, r.max))
		}
	}
	if f := p.Filter; f != 0 && !(f >= MinFilter && f <= MaxFilter) {
		errs = append(errs, fmt.Errorf("%w: filter=%g outside [%g, %g] and not 0", ErrInvalidParam, f, MinFilter, MaxFilter))
	}
	return errors.Join(errs...)
}

// Sanitize returns p with NaN controls replaced by their defaults and every
// control clamped to its range. A non-positive filter cutoff means bypass.
func (p Params) Sanitize() Params {
	def := DefaultParams()
	p.Spray = clampOr(p.Spray, def.Spray, 0, MaxSpray)
	p.Frequency = clampOr(p.Frequency, def.Frequency, MinFrequency, MaxFrequency)
	p.Pitch = clampOr(p.Pitch, def.Pitch, -MaxPitch, MaxPitch)
	p.Drift = clampOr(p.Drift, def.Drift, 0, 1)
	p.Reverse = clampOr(p.Reverse, def.Reverse, 0, 1)
	p.Time = clampOr(p.Time, def.Time, 0, MaxEchoTime)
	p.Feedback = clampOr(p.Feedback, def.Feedback, 0, 1)
	p.Spread = clampOr(p.Spread, def.Spread, 0, 1)
	p.Mix = clampOr(p.Mix, def.Mix, 0, 1)
	if math.IsNaN(p.Filter) || p.Filter <= 0 {
		p.Filter = 0
	} else {
		p.Filter = clampOr(p.Filter, 0, MinFilter, MaxFilter)
	}
	return p
}

// clampOr clamps v to [lo, hi], substituting def for NaN.
func clampOr(v, def, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
