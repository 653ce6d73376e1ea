package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got=%g want=%g (diff %g > eps %g)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or ±Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %g", i, v)
		}
	}
}

// RequireBounded fails t if any element is non-finite or outside
// [-limit, limit].
func RequireBounded(t *testing.T, data []float64, limit float64) {
	t.Helper()
	for i, v := range data {
		if !(math.Abs(v) <= limit) {
			t.Fatalf("index %d: %g outside ±%g", i, v, limit)
		}
	}
}

// MaxAbsDiff returns the largest element-wise absolute difference.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff, nil
}

// MaxStep returns the largest absolute difference between consecutive
// samples of data.
func MaxStep(data []float64) float64 {
	step := 0.0
	for i := 1; i < len(data); i++ {
		step = math.Max(step, math.Abs(data[i]-data[i-1]))
	}
	return step
}

// PeakIndex returns the index of the largest magnitude in data, or -1 for
// an empty slice.
func PeakIndex(data []float64) int {
	idx, peak := -1, -1.0
	for i, v := range data {
		if a := math.Abs(v); a > peak {
			idx, peak = i, a
		}
	}
	return idx
}
