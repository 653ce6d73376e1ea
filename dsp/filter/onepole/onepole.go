package onepole

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/internal/fastmath"
)

const (
	// referenceRate is the sample rate Linear-mode controls are scaled against.
	referenceRate = 44100.0
	// smallestNormal is the smallest positive normal float64.
	smallestNormal = 0x1p-1022
)

// Mode selects how the cutoff argument is interpreted.
type Mode int

const (
	// Hertz takes the cutoff in Hz: b1 = exp(-2π·fc/sampleRate).
	Hertz Mode = iota
	// Linear takes a 0..1 control; 0 passes the input through at 44.1 kHz
	// and 1 freezes the output.
	Linear
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Hertz:
		return "hertz"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// coefficient caches the smoothing coefficient for the last cutoff seen.
type coefficient struct {
	sampleRate float64
	cutoff     float64
	mode       Mode
	a          float64
}

func newCoefficient(sampleRate float64) coefficient {
	c := coefficient{sampleRate: sampleRate}
	c.a = c.compute(0, Hertz)
	return c
}

// get returns a in [0, 1] for y = z + a·(x - z).
func (c *coefficient) get(cutoff float64, mode Mode) float64 {
	if cutoff != c.cutoff || mode != c.mode {
		c.cutoff = cutoff
		c.mode = mode
		c.a = c.compute(cutoff, mode)
	}
	return c.a
}

func (c *coefficient) compute(cutoff float64, mode Mode) float64 {
	if math.IsNaN(cutoff) {
		return 1
	}
	if mode == Linear {
		return core.Clamp((1-cutoff)*c.sampleRate/referenceRate, 0, 1)
	}
	if cutoff <= 0 {
		return 0
	}
	fc := math.Min(cutoff, c.sampleRate/2)
	return 1 - fastmath.Exp(-2*math.Pi*fc/c.sampleRate)
}

func validate(name string, sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// OnePole is a mono one-pole low-pass filter.
type OnePole struct {
	coeff coefficient
	z     float64
}

// New creates a mono one-pole filter.
func New(sampleRate float64) (*OnePole, error) {
	if err := validate("onepole", sampleRate); err != nil {
		return nil, err
	}
	return &OnePole{coeff: newCoefficient(sampleRate)}, nil
}

// SampleRate returns sample rate in Hz.
func (f *OnePole) SampleRate() float64 { return f.coeff.sampleRate }

// ProcessSample filters one sample. When input and state are closer than the
// smallest normal float the input passes through untouched.
func (f *OnePole) ProcessSample(x, cutoff float64, mode Mode) float64 {
	if math.Abs(x-f.z) < smallestNormal {
		return x
	}
	f.z += f.coeff.get(cutoff, mode) * (x - f.z)
	return f.z
}

// ProcessInPlace filters buf with a fixed cutoff.
func (f *OnePole) ProcessInPlace(buf []float64, cutoff float64, mode Mode) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i], cutoff, mode)
	}
}

// Reset clears filter state.
func (f *OnePole) Reset() { f.z = 0 }

// Stereo is a pair of one-pole filters sharing one cutoff.
type Stereo struct {
	coeff  coefficient
	zl, zr float64
}

// NewStereo creates a stereo one-pole filter.
func NewStereo(sampleRate float64) (*Stereo, error) {
	if err := validate("onepole stereo", sampleRate); err != nil {
		return nil, err
	}
	return &Stereo{coeff: newCoefficient(sampleRate)}, nil
}

// SampleRate returns sample rate in Hz.
func (f *Stereo) SampleRate() float64 { return f.coeff.sampleRate }

// ProcessSample filters one stereo frame. The frame passes through when both
// channels already sit within the smallest normal float of the state.
func (f *Stereo) ProcessSample(l, r, cutoff float64, mode Mode) (float64, float64) {
	if math.Abs(l-f.zl) < smallestNormal && math.Abs(r-f.zr) < smallestNormal {
		return l, r
	}
	a := f.coeff.get(cutoff, mode)
	f.zl += a * (l - f.zl)
	f.zr += a * (r - f.zr)
	return f.zl, f.zr
}

// Reset clears filter state.
func (f *Stereo) Reset() { f.zl, f.zr = 0, 0 }

// DCBlock removes DC offset with a one-pole, one-zero high-pass.
type DCBlock struct {
	sampleRate float64
	coeff      float64
	xm1, ym1   float64
}

// NewDCBlock creates a DC blocker with its corner near 35 Hz.
func NewDCBlock(sampleRate float64) (*DCBlock, error) {
	if err := validate("dc block", sampleRate); err != nil {
		return nil, err
	}
	return &DCBlock{
		sampleRate: sampleRate,
		coeff:      core.Clamp(1-220.5/sampleRate, 0, 1),
	}, nil
}

// SampleRate returns sample rate in Hz.
func (d *DCBlock) SampleRate() float64 { return d.sampleRate }

// ProcessSample processes one sample.
func (d *DCBlock) ProcessSample(x float64) float64 {
	y := x - d.xm1 + d.coeff*d.ym1
	d.xm1 = x
	d.ym1 = core.FlushDenormals(y)
	return y
}

// ProcessInPlace applies the DC blocker to buf in place.
func (d *DCBlock) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

// Reset clears filter state.
func (d *DCBlock) Reset() { d.xm1, d.ym1 = 0, 0 }
