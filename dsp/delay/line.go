package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
)

// ErrInvalidSize is returned when a delay line is requested with no capacity.
var ErrInvalidSize = errors.New("delay size must be > 0")

// Line is a circular delay line.
//
// The buffer length is rounded up to a power of two so index arithmetic
// wraps with a mask. A single write cursor advances once per Write; reads
// are expressed as a delay behind that cursor, where delay 1 is the most
// recently written sample.
type Line struct {
	buffer     []float64
	mask       int
	writePos   int
	mode       interp.Mode
	sampleRate float64
}

// New returns a delay line holding at least size samples.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := nextPowerOfTwo(size)
	return &Line{
		buffer:     make([]float64, n),
		mask:       n - 1,
		mode:       cfg.mode,
		sampleRate: cfg.sampleRate,
	}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// SampleRate returns the rate used by ReadMs.
func (d *Line) SampleRate() float64 {
	return d.sampleRate
}

// Mode returns the kernel used by ReadFractional.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// MaxDelay returns the longest readable delay in samples.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - 1)
}

// Write writes one sample and advances the cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos = (d.writePos + 1) & d.mask
}

// Read reads an integer delay in samples. Read(0) returns the oldest sample,
// the one the next Write overwrites.
func (d *Line) Read(delay int) float64 {
	return d.buffer[(d.writePos-delay)&d.mask]
}

// ReadFractional reads a fractional delay with the line's default kernel.
func (d *Line) ReadFractional(delay float64) float64 {
	return d.ReadMode(delay, d.mode)
}

// ReadMs reads a delay given in milliseconds with the given kernel.
func (d *Line) ReadMs(ms float64, mode interp.Mode) float64 {
	return d.ReadMode(core.MsToSamples(ms, d.sampleRate), mode)
}

// ReadMode reads a fractional delay in samples with the given kernel.
//
// The delay is clamped to [mode.MinDelay(), MaxDelay()]; NaN reads the
// minimum delay. At integer delays every kernel returns the stored sample.
func (d *Line) ReadMode(delay float64, mode interp.Mode) float64 {
	minDelay := mode.MinDelay()
	if !(delay >= minDelay) {
		delay = minDelay
	}
	if maxDelay := d.MaxDelay(); delay > maxDelay {
		delay = maxDelay
	}

	whole := math.Floor(delay)
	back := int(whole)
	frac := delay - whole
	if frac == 0 {
		return d.Read(back)
	}

	// x0 is the older neighbor; t runs from x0 towards the newer x1.
	t := 1 - frac
	back++

	switch mode {
	case interp.Step:
		return d.Read(back)
	case interp.Cosine:
		return interp.Cosine2(t, d.Read(back), d.Read(back-1))
	case interp.Cubic:
		return interp.Lagrange4(t, d.Read(back+1), d.Read(back), d.Read(back-1), d.Read(back-2))
	case interp.Spline:
		return interp.Hermite4(t, d.Read(back+1), d.Read(back), d.Read(back-1), d.Read(back-2))
	default:
		return interp.Linear2(t, d.Read(back), d.Read(back-1))
	}
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
