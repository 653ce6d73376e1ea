package smooth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
)

// settleEpsilon is the distance at which a smoother snaps onto its target.
const settleEpsilon = 1e-9

// Smoother is the common contract of all smoothers in this package.
type Smoother interface {
	// Reset jumps to value and stops any glide.
	Reset(value float64)
	// SetTarget starts a glide towards target. NaN is ignored.
	SetTarget(target float64)
	Target() float64
	Current() float64
	// Next advances one sample and returns the new current value.
	Next() float64
	// Active reports whether a glide is in progress.
	Active() bool
}

var (
	_ Smoother = (*Linear)(nil)
	_ Smoother = (*Exponential)(nil)
	_ Smoother = (*Logarithmic)(nil)
)

// state is shared by all smoothers.
type state struct {
	current float64
	target  float64
	active  bool
}

func (s *state) Reset(value float64) {
	if math.IsNaN(value) {
		return
	}
	s.current = value
	s.target = value
	s.active = false
}

func (s *state) Target() float64 { return s.target }
func (s *state) Current() float64 { return s.current }
func (s *state) Active() bool { return s.active }

// settle snaps onto the target when close enough and reports whether it did.
func (s *state) settle() bool {
	if math.Abs(s.target-s.current) <= settleEpsilon {
		s.current = s.target
		s.active = false
		return true
	}
	return false
}

func validateRate(name string, sampleRate, rate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("%s smoother: %w", name, err)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%s smoother: rate must be > 0 and finite: %f", name, rate)
	}
	return nil
}

// Linear glides with a constant step of (target-start)·frequency/sampleRate.
type Linear struct {
	state
	factor float64
	step   float64
}

// NewLinear returns a linear smoother that covers any distance in
// 1/frequency seconds.
func NewLinear(sampleRate, frequency float64) (*Linear, error) {
	if err := validateRate("linear", sampleRate, frequency); err != nil {
		return nil, err
	}
	return &Linear{factor: math.Min(frequency/sampleRate, 1)}, nil
}

// SetTarget starts a glide from the current value. Repeating the current
// target keeps the glide running unchanged.
func (s *Linear) SetTarget(target float64) {
	if math.IsNaN(target) || target == s.target {
		return
	}
	s.target = target
	s.step = (target - s.current) * s.factor
	s.active = s.current != target
}

// Next advances the glide by one step, landing exactly on the target
// instead of overshooting it.
func (s *Linear) Next() float64 {
	if !s.active || s.settle() {
		return s.current
	}
	if math.Abs(s.target-s.current) <= math.Abs(s.step) {
		s.current = s.target
		s.active = false
		return s.current
	}
	s.current += s.step
	return s.current
}

// Exponential is a one-pole low-pass smoother.
type Exponential struct {
	state
	b1 float64
}

// NewExponential returns an exponential smoother with corner frequency
// frequency in Hz.
func NewExponential(sampleRate, frequency float64) (*Exponential, error) {
	if err := validateRate("exponential", sampleRate, frequency); err != nil {
		return nil, err
	}
	return &Exponential{b1: math.Exp(-2 * math.Pi * frequency / sampleRate)}, nil
}

// SetTarget starts a glide towards target.
func (s *Exponential) SetTarget(target float64) {
	if math.IsNaN(target) {
		return
	}
	s.target = target
	s.active = s.current != target
}

// Next advances the smoother by one sample.
func (s *Exponential) Next() float64 {
	if !s.active || s.settle() {
		return s.current
	}
	s.current = s.target*(1-s.b1) + s.current*s.b1
	return s.current
}

// Logarithmic closes half of the remaining distance every halfLife seconds.
type Logarithmic struct {
	state
	coeff float64
}

// NewLogarithmic returns a logarithmic smoother with the given half-life in
// seconds.
func NewLogarithmic(sampleRate, halfLife float64) (*Logarithmic, error) {
	if err := validateRate("logarithmic", sampleRate, halfLife); err != nil {
		return nil, err
	}
	return &Logarithmic{coeff: math.Min(math.Ln2/(sampleRate*halfLife), 1)}, nil
}

// SetTarget starts a glide towards target.
func (s *Logarithmic) SetTarget(target float64) {
	if math.IsNaN(target) {
		return
	}
	s.target = target
	s.active = s.current != target
}

// Next advances the smoother by one sample.
func (s *Logarithmic) Next() float64 {
	if !s.active || s.settle() {
		return s.current
	}
	s.current += (s.target - s.current) * s.coeff
	return s.current
}
