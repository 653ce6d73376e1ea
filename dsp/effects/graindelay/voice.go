package graindelay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/delay"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
	"github.com/cwbudde/algo-graindelay/dsp/phasor"
	"github.com/cwbudde/algo-graindelay/dsp/stereo"
	"github.com/cwbudde/algo-graindelay/internal/fastmath"
)

// spanEpsilon is the read sweep below which a grain reads at a fixed offset.
const spanEpsilon = 1e-9

// GrainParams are the controls a voice reads at trigger time and, for Speed,
// on every sample.
type GrainParams struct {
	Spray     float64 // ms, random start offset range
	Frequency float64 // Hz, grain rate; one grain lasts 1/Frequency seconds
	Speed     float64 // playback ratio, 2^(pitch/12)
	Drift     float64 // 0..1, random pitch deviation range
	Reverse   float64 // 0..1, probability of backward playback
	Spread    float64 // 0..1, random pan range
}

// Voice is one grain. It is Free until triggered, then Active until its
// window has run from 0 to 1, which takes exactly one grain period.
//
// While active the voice sweeps its read position through the grain buffer
// at (1 - speed) windows per period, or (1 + speed) when reversed, so the
// buffer is heard at the requested playback ratio.
type Voice struct {
	progress     *phasor.Ramp
	samplePeriod float64

	freq       float64
	windowMs   float64
	startMs    float64
	pan        float64
	drift      float64
	driftRatio float64
	reversed   bool
	gainL      float64
	gainR      float64

	// pos is the read position in windows, swept across [0, span].
	pos  float64
	span float64
}

// newVoice creates a free voice outside a pool.
func newVoice(sampleRate float64) (*Voice, error) {
	v := &Voice{}
	if err := v.init(sampleRate); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Voice) init(sampleRate float64) error {
	ramp, err := phasor.NewRamp(sampleRate)
	if err != nil {
		return fmt.Errorf("grain voice: %w", err)
	}
	*v = Voice{progress: ramp, samplePeriod: 1 / sampleRate, driftRatio: 1}
	return nil
}

// Free reports whether the voice may be triggered.
func (v *Voice) Free() bool { return v.progress.Finished() }

// Progress returns the window position in [0, 1].
func (v *Voice) Progress() float64 { return v.progress.Progress() }

// Reversed reports whether the current grain plays backwards.
func (v *Voice) Reversed() bool { return v.reversed }

// Pan returns the pan position of the current grain in [-50, 50].
func (v *Voice) Pan() float64 { return v.pan }

// Drift returns the pitch deviation of the current grain in semitones.
func (v *Voice) Drift() float64 { return v.drift }

// StartOffset returns the spray offset of the current grain in ms.
func (v *Voice) StartOffset() float64 { return v.startMs }

// Trigger starts a grain with fresh random parameters. It draws four values
// from r, in order: start offset, pan, direction and drift. An active voice
// is left untouched and Trigger reports false.
func (v *Voice) Trigger(r Rand, p GrainParams) bool {
	if !v.Free() {
		return false
	}

	freq := p.Frequency
	if !(freq >= MinFrequency) {
		freq = MinFrequency
	}
	v.freq = freq
	v.windowMs = 1000 / freq

	v.startMs = r.Float64() * math.Max(p.Spray, 0)
	spread := core.Clamp(p.Spread, 0, 1)
	v.pan = (r.Float64()*2 - 1) * spread * stereo.PanRange
	reverse := r.Float64()
	v.reversed = p.Reverse > 0 && reverse <= p.Reverse
	drift := core.Clamp(p.Drift, 0, 1)
	v.drift = (r.Float64()*2 - 1) * drift * drift * MaxDrift
	v.driftRatio = fastmath.Exp2(v.drift / 12)
	v.gainL, v.gainR = stereo.Pan(1, v.pan)

	rate := v.readRate(p.Speed)
	v.span = math.Abs(rate)
	v.pos = 0
	if rate < 0 {
		v.pos = v.span
	}

	v.progress.Start()
	return true
}

// readRate returns the signed read sweep in windows per grain period.
func (v *Voice) readRate(speed float64) float64 {
	if !core.IsFinite(speed) {
		speed = 1
	}
	speed *= v.driftRatio
	if v.reversed {
		return 1 + speed
	}
	return 1 - speed
}

// Process renders one stereo sample of the grain from line. Free voices
// return silence.
func (v *Voice) Process(line *delay.Line, speed float64, mode interp.Mode) (float64, float64) {
	if v.Free() {
		return 0, 0
	}

	progress := v.progress.Process(v.freq)

	readMs := v.startMs
	if v.span > spanEpsilon {
		readMs += v.pos * v.windowMs
		v.pos = core.Clamp(v.pos+v.readRate(speed)*v.freq*v.samplePeriod, 0, v.span)
	}

	window := fastmath.Sin(math.Pi * progress)
	x := line.ReadMs(readMs, mode) * window * window

	return x * v.gainL, x * v.gainR
}

// Reset frees the voice.
func (v *Voice) Reset() {
	ramp := v.progress
	ramp.Stop()
	*v = Voice{progress: ramp, samplePeriod: v.samplePeriod, driftRatio: 1}
}
