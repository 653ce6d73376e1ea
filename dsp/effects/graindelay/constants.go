package graindelay

import "math"

const (
	// MaxPitch is the largest pitch shift in semitones, up or down.
	MaxPitch = 24.0
	// MaxDrift is the largest random per-grain pitch deviation in semitones.
	MaxDrift = 1.0
	// MinFrequency and MaxFrequency bound the grain rate in Hz.
	MinFrequency = 1.0
	MaxFrequency = 150.0
	// MaxSpray is the largest random grain start offset in milliseconds.
	MaxSpray = 500.0
	// MaxEchoTime is the default echo line capacity in milliseconds.
	MaxEchoTime = 5000.0
	// MinFilter and MaxFilter bound the tone filter cutoff in Hz. A cutoff
	// of 0 bypasses the filter.
	MinFilter = 20.0
	MaxFilter = 20000.0

	// DefaultOverlap is the number of grains triggered per grain period.
	DefaultOverlap = 4
	// DefaultSmoothingFrequency is the rate of the parameter smoothers in Hz.
	DefaultSmoothingFrequency = 12.0

	// guardSamples pads every delay buffer beyond its nominal length.
	guardSamples = 4
	// feedbackGain scales the filtered stereo grains into the mono feedback
	// signal: (L+R)/√2 · 0.5.
	feedbackGain = 0.5 / math.Sqrt2
)

// MaxGrainDelayTime is the longest grain read offset in seconds, excluding
// spray: one window at MinFrequency swept at the highest relative read rate
// 1 + 2^((MaxPitch+MaxDrift)/12).
var MaxGrainDelayTime = (1 + math.Exp2((MaxPitch+MaxDrift)/12)) / MinFrequency

// grainBufferSeconds is the capacity of the grain delay buffer.
func grainBufferSeconds() float64 {
	return MaxGrainDelayTime + MaxSpray/1000
}
