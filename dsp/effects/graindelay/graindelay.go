package graindelay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/delay"
	"github.com/cwbudde/algo-graindelay/dsp/filter/onepole"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
	"github.com/cwbudde/algo-graindelay/dsp/smooth"
	"github.com/cwbudde/algo-graindelay/dsp/stereo"
	"github.com/cwbudde/algo-graindelay/internal/fastmath"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidSampleRate is returned by New for a non-positive or non-finite
// sample rate.
var ErrInvalidSampleRate = core.ErrInvalidSampleRate

// GrainDelay is a granular delay with feedback, tone filter and dry/wet mix.
type GrainDelay struct {
	sampleRate float64
	echoMode   interp.Mode
	seed       int64
	rand       Rand

	echo *delay.VariableLine
	pool *Pool
	tone toneFilter
	dc   *onepole.DCBlock

	speed    *smooth.Linear
	filter   *smooth.Linear
	feedback *smooth.Linear
	mix      *smooth.Linear

	// pitch caches the last pitch converted to the speed ratio, filterHz
	// the last cutoff converted to a tone position.
	pitch    float64
	ratio    float64
	filterHz float64
	tonePos  float64
	filterOn bool

	wetL, wetR       []float64
	dryGain, wetGain []float64
	dry              []float64
}

// New creates a grain delay for sampleRate with optional overrides.
func New(sampleRate float64, opts ...Option) (*GrainDelay, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("graindelay: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	voices := cfg.voices
	if voices == 0 {
		voices = 2 * cfg.overlap
	}
	r := cfg.rand
	if r == nil {
		r = newDefaultRand(cfg.seed)
	}

	g := &GrainDelay{
		sampleRate: sampleRate,
		echoMode:   cfg.echoMode,
		seed:       cfg.seed,
		rand:       r,
		wetL:       make([]float64, cfg.maxBlockSize),
		wetR:       make([]float64, cfg.maxBlockSize),
		dryGain:    make([]float64, cfg.maxBlockSize),
		wetGain:    make([]float64, cfg.maxBlockSize),
		dry:        make([]float64, cfg.maxBlockSize),
	}

	var err error
	echoSize := int(math.Ceil(cfg.maxEchoMs*0.001*sampleRate)) + guardSamples
	if g.echo, err = delay.NewVariable(echoSize, delay.WithSampleRate(sampleRate), delay.WithMode(cfg.echoMode)); err != nil {
		return nil, fmt.Errorf("graindelay: %w", err)
	}
	if g.pool, err = NewPool(sampleRate, voices, cfg.overlap, r, cfg.grainMode); err != nil {
		return nil, fmt.Errorf("graindelay: %w", err)
	}
	if g.tone, err = newToneFilter(sampleRate); err != nil {
		return nil, fmt.Errorf("graindelay: %w", err)
	}
	if g.dc, err = onepole.NewDCBlock(sampleRate); err != nil {
		return nil, fmt.Errorf("graindelay: %w", err)
	}
	for _, s := range []**smooth.Linear{&g.speed, &g.filter, &g.feedback, &g.mix} {
		if *s, err = smooth.NewLinear(sampleRate, cfg.smoothingHz); err != nil {
			return nil, fmt.Errorf("graindelay: %w", err)
		}
	}

	g.ResetParams(DefaultParams())
	return g, nil
}

// SampleRate returns sample rate in Hz.
func (g *GrainDelay) SampleRate() float64 { return g.sampleRate }

// Voices returns the voice pool capacity.
func (g *GrainDelay) Voices() int { return g.pool.Voices() }

// ActiveVoices returns the number of grains currently playing.
func (g *GrainDelay) ActiveVoices() int { return g.pool.ActiveVoices() }

// Dropped returns the number of grain triggers dropped because every voice
// was busy.
func (g *GrainDelay) Dropped() uint64 { return g.pool.Dropped() }

// Latency returns the shortest delay of the wet path in samples: the
// minimum read delay of the echo line plus that of the grain buffer.
func (g *GrainDelay) Latency() int {
	return int(g.echoMode.MinDelay() + g.pool.mode.MinDelay())
}

// ResetParams jumps every smoother and the echo time to p without gliding or
// crossfading. Use it before the first ProcessSample call so that the
// initial settings do not sweep in from the defaults.
func (g *GrainDelay) ResetParams(p Params) {
	p = p.Sanitize()

	g.pitch = p.Pitch
	g.ratio = fastmath.Exp2(p.Pitch / 12)
	g.speed.Reset(g.ratio)
	g.filterHz = p.Filter
	g.tonePos = tonePosition(p.Filter)
	g.filter.Reset(g.tonePos)
	on := p.Filter > 0
	if on && !g.filterOn {
		g.tone.reset()
	}
	g.filterOn = on
	g.feedback.Reset(p.Feedback)
	g.mix.Reset(p.Mix)
	g.echo.SetTime(p.Time)
}

// SetRandomSeed reseeds the default random source and resets the processor.
// Sources supplied with WithRand are rewound only if they have a Seed method.
func (g *GrainDelay) SetRandomSeed(seed int64) {
	g.seed = seed
	g.Reset()
}

// Reset clears all audio state, rewinds the random source and restores the
// default parameters.
func (g *GrainDelay) Reset() {
	g.echo.Reset()
	g.pool.Reset()
	g.tone.reset()
	g.dc.Reset()
	if s, ok := g.rand.(seeder); ok {
		s.Seed(g.seed)
	}
	g.ResetParams(DefaultParams())
}

// ProcessSample processes one input sample and returns the stereo output.
func (g *GrainDelay) ProcessSample(input float64, p Params) (float64, float64) {
	p = p.Sanitize()
	wetL, wetR, mix := g.step(input, &p)
	return stereo.Mix(input, wetL, wetR, mix)
}

// ProcessBlock processes in into outL and outR with fixed params. It handles
// min(len(in), len(outL), len(outR)) samples and gives the same result as
// calling ProcessSample for each of them.
func (g *GrainDelay) ProcessBlock(in, outL, outR []float64, p Params) {
	n := min(len(in), len(outL), len(outR))
	p = p.Sanitize()

	for start := 0; start < n; start += len(g.wetL) {
		end := min(start+len(g.wetL), n)
		g.processChunk(in[start:end], outL[start:end], outR[start:end], &p)
	}
}

func (g *GrainDelay) processChunk(in, outL, outR []float64, p *Params) {
	n := len(in)
	wetL, wetR := g.wetL[:n], g.wetR[:n]
	dryGain, wetGain, dry := g.dryGain[:n], g.wetGain[:n], g.dry[:n]

	for i, x := range in {
		var mix float64
		wetL[i], wetR[i], mix = g.step(x, p)
		dryGain[i], wetGain[i] = stereo.MixGains(mix)
	}

	vecmath.MulBlock(dry, in, dryGain)
	vecmath.MulBlock(outL, wetL, wetGain)
	vecmath.MulBlock(outR, wetR, wetGain)
	for i, d := range dry {
		outL[i] += d
		outR[i] += d
	}
}

// step runs the echo, grain and feedback stages for one sample and returns
// the filtered grains and the smoothed mix. p must be sanitized.
func (g *GrainDelay) step(input float64, p *Params) (float64, float64, float64) {
	if !core.IsFinite(input) {
		input = 0
	}
	g.setTargets(p)

	speed := g.speed.Next()
	tone := g.filter.Next()
	feedback := g.feedback.Next()
	mix := g.mix.Next()

	echo := g.echo.Read(p.Time, g.echoMode)

	l, r := g.pool.Process(echo, GrainParams{
		Spray:     p.Spray,
		Frequency: p.Frequency,
		Speed:     speed,
		Drift:     p.Drift,
		Reverse:   p.Reverse,
		Spread:    p.Spread,
	})
	if g.filterOn {
		l, r = g.tone.process(l, r, tone, p.Pitch)
	}

	fb := core.Clamp((l+r)*feedbackGain*feedback, -1, 1)
	// The DC blocker overshoots on steps; clamp once more before writing.
	fb = core.Clamp(g.dc.ProcessSample(fb), -1, 1)
	g.echo.Write(input + fb)

	return l, r, mix
}

func (g *GrainDelay) setTargets(p *Params) {
	if p.Pitch != g.pitch {
		g.pitch = p.Pitch
		g.ratio = fastmath.Exp2(p.Pitch / 12)
	}
	g.speed.SetTarget(g.ratio)

	if p.Filter != g.filterHz {
		g.filterHz = p.Filter
		g.tonePos = tonePosition(p.Filter)
	}
	on := p.Filter > 0
	if on && !g.filterOn {
		// Start from the new setting with no history from before the bypass.
		g.filter.Reset(g.tonePos)
		g.tone.reset()
	}
	g.filterOn = on
	if on {
		g.filter.SetTarget(g.tonePos)
	}

	g.feedback.SetTarget(p.Feedback)
	g.mix.SetTarget(p.Mix)
}
