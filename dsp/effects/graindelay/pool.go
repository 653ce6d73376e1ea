package graindelay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/delay"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
	"github.com/cwbudde/algo-graindelay/dsp/phasor"
)

// ErrInvalidVoices is returned for a pool without voices or overlap.
var ErrInvalidVoices = errors.New("voice and overlap counts must be >= 1")

// Pool schedules grains over a fixed set of voices sharing one grain buffer.
type Pool struct {
	voices  []Voice
	line    *delay.Line
	clock   *phasor.Phasor
	edge    phasor.Delta
	rand    Rand
	mode    interp.Mode
	overlap int

	last    int
	dropped uint64
}

// NewPool creates a pool of voices grains, triggering overlap grains per
// grain period and reading the grain buffer with mode.
func NewPool(sampleRate float64, voices, overlap int, r Rand, mode interp.Mode) (*Pool, error) {
	if voices < 1 || overlap < 1 {
		return nil, fmt.Errorf("%w: voices=%d overlap=%d", ErrInvalidVoices, voices, overlap)
	}
	if r == nil {
		r = newDefaultRand(defaultSeed)
	}

	clock, err := phasor.New(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("grain pool: %w", err)
	}

	size := int(math.Ceil(grainBufferSeconds()*sampleRate)) + guardSamples
	line, err := delay.New(size, delay.WithMode(mode), delay.WithSampleRate(sampleRate))
	if err != nil {
		return nil, fmt.Errorf("grain pool: %w", err)
	}

	p := &Pool{
		voices:  make([]Voice, voices),
		line:    line,
		clock:   clock,
		rand:    r,
		mode:    mode,
		overlap: overlap,
		last:    voices - 1,
	}
	for i := range p.voices {
		if err := p.voices[i].init(sampleRate); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Voices returns the pool capacity.
func (p *Pool) Voices() int { return len(p.voices) }

// Voice returns voice i.
func (p *Pool) Voice(i int) *Voice { return &p.voices[i] }

// Overlap returns the number of triggers per grain period.
func (p *Pool) Overlap() int { return p.overlap }

// Line returns the grain buffer.
func (p *Pool) Line() *delay.Line { return p.line }

// ActiveVoices returns the number of voices currently playing.
func (p *Pool) ActiveVoices() int {
	n := 0
	for i := range p.voices {
		if !p.voices[i].Free() {
			n++
		}
	}
	return n
}

// Dropped returns the number of triggers that found no free voice.
func (p *Pool) Dropped() uint64 { return p.dropped }

// Process advances the trigger clock, renders all active voices and then
// writes input into the grain buffer. It returns the plain sum of the voices;
// sin² windows spaced 1/overlap apart add up to overlap/2.
func (p *Pool) Process(input float64, g GrainParams) (float64, float64) {
	freq := g.Frequency
	if !(freq >= MinFrequency) {
		freq = MinFrequency
	}
	if p.edge.Process(p.clock.Process(freq*float64(p.overlap))) < 0 {
		p.trigger(g)
	}

	var l, r float64
	for i := range p.voices {
		v := &p.voices[i]
		if v.Free() {
			continue
		}
		vl, vr := v.Process(p.line, g.Speed, p.mode)
		l += vl
		r += vr
	}

	p.line.Write(input)

	return l, r
}

// trigger hands g to the first free voice after the last one assigned.
func (p *Pool) trigger(g GrainParams) bool {
	n := len(p.voices)
	for k := 1; k <= n; k++ {
		i := (p.last + k) % n
		if p.voices[i].Trigger(p.rand, g) {
			p.last = i
			return true
		}
	}
	p.dropped++
	return false
}

// Reset silences all voices, clears the grain buffer and rewinds the clock.
func (p *Pool) Reset() {
	for i := range p.voices {
		p.voices[i].Reset()
	}
	p.line.Reset()
	p.clock.Reset()
	p.edge.Reset()
	p.last = len(p.voices) - 1
	p.dropped = 0
}
