package graindelay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
)

// Option mutates GrainDelay construction parameters.
type Option func(*config) error

type config struct {
	voices       int
	overlap      int
	rand         Rand
	seed         int64
	echoMode     interp.Mode
	grainMode    interp.Mode
	maxEchoMs    float64
	smoothingHz  float64
	maxBlockSize int
}

func defaultConfig() config {
	return config{
		overlap:      DefaultOverlap,
		seed:         defaultSeed,
		echoMode:     interp.Linear,
		grainMode:    interp.Linear,
		maxEchoMs:    MaxEchoTime,
		smoothingHz:  DefaultSmoothingFrequency,
		maxBlockSize: core.DefaultProcessorConfig().BlockSize,
	}
}

// WithVoices sets the voice pool capacity. By default the pool holds twice
// the overlap.
func WithVoices(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: voices=%d", ErrInvalidVoices, n)
		}
		cfg.voices = n
		return nil
	}
}

// WithOverlap sets how many grains are triggered per grain period.
func WithOverlap(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: overlap=%d", ErrInvalidVoices, n)
		}
		cfg.overlap = n
		return nil
	}
}

// WithRand replaces the random source grains draw from.
func WithRand(r Rand) Option {
	return func(cfg *config) error {
		if r == nil {
			return errors.New("graindelay random source must not be nil")
		}
		cfg.rand = r
		return nil
	}
}

// WithSeed seeds the default random source.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithEchoInterpolation sets the kernel for echo line reads.
func WithEchoInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if err := validateMode(mode); err != nil {
			return err
		}
		cfg.echoMode = mode
		return nil
	}
}

// WithGrainInterpolation sets the kernel for grain buffer reads.
func WithGrainInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if err := validateMode(mode); err != nil {
			return err
		}
		cfg.grainMode = mode
		return nil
	}
}

// WithMaxEchoTime sets the echo line capacity in milliseconds.
func WithMaxEchoTime(ms float64) Option {
	return func(cfg *config) error {
		if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("graindelay max echo time must be > 0 and finite: %f", ms)
		}
		cfg.maxEchoMs = ms
		return nil
	}
}

// WithSmoothingFrequency sets the rate of the parameter smoothers in Hz.
func WithSmoothingFrequency(hz float64) Option {
	return func(cfg *config) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("graindelay smoothing frequency must be > 0 and finite: %f", hz)
		}
		cfg.smoothingHz = hz
		return nil
	}
}

// WithMaxBlockSize sets the scratch size ProcessBlock works through at a
// time.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("graindelay max block size must be >= 1: %d", n)
		}
		cfg.maxBlockSize = n
		return nil
	}
}

func validateMode(mode interp.Mode) error {
	if mode < interp.Step || mode > interp.Spline {
		return fmt.Errorf("graindelay interpolation mode unknown: %d", mode)
	}
	return nil
}
