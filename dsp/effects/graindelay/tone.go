package graindelay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/filter/onepole"
)

var toneRange = math.Log(MaxFilter / MinFilter)

// tonePosition maps a cutoff in Hz onto [0, 1], logarithmically from
// MinFilter to MaxFilter.
func tonePosition(hz float64) float64 {
	if !(hz > 0) {
		return 0
	}
	return core.Clamp(math.Log(hz/MinFilter)/toneRange, 0, 1)
}

// toneFilter colours the grains with a one-pole filter on the Linear scale.
// Grains pitched up are low-passed, everything else is high-passed, so the
// tone control always works against the direction of the pitch shift.
type toneFilter struct {
	lp *onepole.Stereo
}

func newToneFilter(sampleRate float64) (toneFilter, error) {
	lp, err := onepole.NewStereo(sampleRate)
	if err != nil {
		return toneFilter{}, fmt.Errorf("tone: %w", err)
	}
	return toneFilter{lp: lp}, nil
}

// process filters one frame. position is the smoothed tone position in
// [0, 1]; 1 leaves the low-pass fully open and the high-pass fully closed.
//
// The high-pass is formed as low-pass minus input and so comes out with
// inverted polarity.
func (t toneFilter) process(l, r, position, pitch float64) (float64, float64) {
	if pitch > 0 {
		amount := 1 - position
		return t.lp.ProcessSample(l, r, math.Cbrt(amount), onepole.Linear)
	}
	amount := position
	fl, fr := t.lp.ProcessSample(l, r, 1-amount*amount*amount, onepole.Linear)
	return fl - l, fr - r
}

func (t toneFilter) reset() { t.lp.Reset() }
