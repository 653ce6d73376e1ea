package delay

import (
	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
)

type config struct {
	mode       interp.Mode
	sampleRate float64
}

func defaultConfig() config {
	return config{
		mode:       interp.Linear,
		sampleRate: core.DefaultProcessorConfig().SampleRate,
	}
}

// Option configures a Line.
type Option func(*config)

// WithMode sets the kernel used by ReadFractional.
func WithMode(mode interp.Mode) Option {
	return func(cfg *config) {
		if mode >= interp.Step && mode <= interp.Spline {
			cfg.mode = mode
		}
	}
}

// WithSampleRate sets the rate used to convert milliseconds to samples.
// Invalid rates are ignored.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) {
		if core.ValidateSampleRate(sampleRate) == nil {
			cfg.sampleRate = sampleRate
		}
	}
}
