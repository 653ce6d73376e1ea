package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffIdentical(t *testing.T) {
	a := []float64{1, 2, 3}

	d, err := MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0 for identical slices", d)
	}
}

func TestMaxStep(t *testing.T) {
	if got := MaxStep([]float64{0, 0.5, 0.25, -0.5}); got != 0.75 {
		t.Fatalf("got=%g want=0.75", got)
	}
	if got := MaxStep(nil); got != 0 {
		t.Fatalf("empty: got=%g want=0", got)
	}
}

func TestPeakIndex(t *testing.T) {
	if got := PeakIndex([]float64{0.1, -0.9, 0.5}); got != 1 {
		t.Fatalf("got=%d want=1", got)
	}
	if got := PeakIndex(nil); got != -1 {
		t.Fatalf("empty: got=%d want=-1", got)
	}
}

func TestRequireBoundedAcceptsInRange(t *testing.T) {
	RequireBounded(t, []float64{-1, 0, 1}, 1)
}

func TestSequenceRandCycles(t *testing.T) {
	r := NewSequenceRand(0.1, 0.2)
	want := []float64{0.1, 0.2, 0.1}
	for i, w := range want {
		if got := r.Float64(); got != w {
			t.Fatalf("draw %d: got=%g want=%g", i, got, w)
		}
	}
	if r.Calls() != 3 {
		t.Fatalf("calls: got=%d want=3", r.Calls())
	}

	if got := NewSequenceRand().Float64(); got != 0 {
		t.Fatalf("empty: got=%g want=0", got)
	}
}
