// Package stereo provides constant-power panning and equal-power dry/wet
// mixing for mono-in, stereo-out processors.
package stereo

import (
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/internal/fastmath"
)

// PanRange is the magnitude of the hard-left (-PanRange) and hard-right
// (+PanRange) pan positions.
const PanRange = 50.0

// Pan spreads x over two channels with the constant-power law
// θ = (p+50)·0.005·π, returning (x·cos θ, x·sin θ). Positions outside
// [-50, 50] are clamped.
func Pan(x, p float64) (float64, float64) {
	if math.IsNaN(p) {
		p = 0
	}
	theta := (core.Clamp(p, -PanRange, PanRange) + PanRange) * 0.005 * math.Pi
	return x * fastmath.Cos(theta), x * fastmath.Sin(theta)
}

// MixGains returns the equal-power dry and wet gains for mix in [0, 1].
func MixGains(mix float64) (dry, wet float64) {
	if math.IsNaN(mix) {
		mix = 0
	}
	theta := core.Clamp(mix, 0, 1) * math.Pi / 2
	return fastmath.Cos(theta), fastmath.Sin(theta)
}

// Mix blends a mono dry signal with a stereo wet signal.
func Mix(dry, wetL, wetR, mix float64) (float64, float64) {
	dryGain, wetGain := MixGains(mix)
	d := dry * dryGain
	return d + wetL*wetGain, d + wetR*wetGain
}
