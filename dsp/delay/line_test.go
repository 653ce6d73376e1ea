package delay

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-graindelay/dsp/interp"
)

var allModes = []interp.Mode{interp.Step, interp.Linear, interp.Cosine, interp.Cubic, interp.Spline}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fillRamp fills a delay line with a linear ramp [0, 1, 2, ..., size-1].
func fillRamp(d *Line) {
	for i := 0; i < d.Len(); i++ {
		d.Write(float64(i))
	}
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestNewRoundsToPowerOfTwo(t *testing.T) {
	for _, tc := range []struct{ size, want int }{{1, 1}, {3, 4}, {16, 16}, {1000, 1024}} {
		d, err := New(tc.size)
		if err != nil {
			t.Fatal(err)
		}
		if d.Len() != tc.want {
			t.Fatalf("New(%d).Len() = %d, want %d", tc.size, d.Len(), tc.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Mode() != interp.Linear {
		t.Fatalf("default mode: got %v want linear", d.Mode())
	}
	if d.SampleRate() != 44100 {
		t.Fatalf("default sample rate: got %v want 44100", d.SampleRate())
	}
}

func TestNewWithOptions(t *testing.T) {
	d, err := New(16, WithMode(interp.Spline), WithSampleRate(48000), WithSampleRate(-1), nil)
	if err != nil {
		t.Fatal(err)
	}

	if d.Mode() != interp.Spline {
		t.Fatalf("mode: got %v want spline", d.Mode())
	}
	if d.SampleRate() != 48000 {
		t.Fatalf("sample rate: got %v want 48000", d.SampleRate())
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(float64(i))
	}
	// buffer should contain [8, 9, 6, 7], writePos=2
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	if got := d.Read(0); got != 6 {
		t.Fatalf("oldest: got %v want 6", got)
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 0; i < 4; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

// --- step kernel reproduces the written sequence ---

func TestStepReadsSampleWrittenKStepsEarlier(t *testing.T) {
	d, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	written := make([]float64, 0, 200)
	for i := 0; i < 200; i++ {
		x := math.Sin(0.37*float64(i)) + 0.01*float64(i)
		d.Write(x)
		written = append(written, x)
	}

	n := len(written)
	for k := 1; k < d.Len(); k++ {
		want := written[n-k]
		if got := d.ReadMode(float64(k), interp.Step); got != want {
			t.Fatalf("k=%d: got %v want %v", k, got, want)
		}
	}
}

func TestStepHoldsPrecedingSample(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	fillRamp(d)

	// delay 3.4 lies between delay 4 (older) and delay 3; zero-order hold
	// keeps the older one.
	if got := d.ReadMode(3.4, interp.Step); got != 12 {
		t.Fatalf("got %v want 12", got)
	}
}

// --- all kernels agree with Step at integer offsets ---

func TestKernelsAgreeAtIntegerDelays(t *testing.T) {
	d, err := New(128)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 300; i++ {
		d.Write(math.Cos(0.21*float64(i)) * float64(i%7))
	}

	for k := 2; k < d.Len(); k++ {
		want := d.ReadMode(float64(k), interp.Step)
		for _, mode := range allModes {
			if got := d.ReadMode(float64(k), mode); got != want {
				t.Fatalf("%v at k=%d: got %v want %v", mode, k, got, want)
			}
		}
	}

	// The 2-point kernels also agree at the minimum latency of one sample.
	for _, mode := range []interp.Mode{interp.Linear, interp.Cosine} {
		if got, want := d.ReadMode(1, mode), d.ReadMode(1, interp.Step); got != want {
			t.Fatalf("%v at k=1: got %v want %v", mode, got, want)
		}
	}
}

// --- fractional reads ---

func TestReadFractionalLinearRamp(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Linear, interp.Cubic, interp.Spline} {
		d, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}

		fillRamp(d)
		// Linear, Lagrange and Catmull-Rom are all exact on a straight line.
		got := d.ReadFractional(5.5)

		want := float64(d.Len()) - 5.5 // 26.5
		if !approxEqual(got, want, 1e-10) {
			t.Fatalf("%v: got %v want %v", mode, got, want)
		}
	}
}

func TestCosineBendsTowardsOlderSample(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	fillRamp(d)

	// delay 3.75: a quarter of the way from delay 4 (12) to delay 3 (13).
	linear := d.ReadMode(3.75, interp.Linear)
	cosine := d.ReadMode(3.75, interp.Cosine)
	if !approxEqual(linear, 12.25, 1e-12) {
		t.Fatalf("linear: got %v want 12.25", linear)
	}
	if cosine >= linear || cosine <= 12 {
		t.Fatalf("cosine: got %v, want in (12, %v)", cosine, linear)
	}
}

func TestReadClampsDelay(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	fillRamp(d)

	tests := []struct {
		name  string
		delay float64
		mode  interp.Mode
		want  float64
	}{
		{"negative linear", -3, interp.Linear, 7},
		{"zero step", 0, interp.Step, 7},
		{"NaN linear", math.NaN(), interp.Linear, 7},
		{"below min cubic", 1, interp.Cubic, 6},
		{"below min spline", 0.5, interp.Spline, 6},
		{"beyond capacity", 100, interp.Linear, 1},
		{"+Inf", math.Inf(1), interp.Spline, 1},
	}
	for _, tc := range tests {
		if got := d.ReadMode(tc.delay, tc.mode); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestAllModesDCPreservation(t *testing.T) {
	for _, mode := range allModes {
		d, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < d.Len(); i++ {
			d.Write(42.0)
		}

		got := d.ReadFractional(5.3)
		if !approxEqual(got, 42.0, 1e-9) {
			t.Fatalf("%v DC: got %v want 42", mode, got)
		}
	}
}

func TestAllModesSineQuality(t *testing.T) {
	// Write a low-frequency sine into a large buffer and verify
	// that fractional reads are close to the analytic value.
	freq := 0.02 // low frequency relative to sample rate
	size := 256

	modes := []struct {
		mode interp.Mode
		tol  float64
	}{
		{interp.Step, 0.13},
		{interp.Linear, 0.01},
		{interp.Cosine, 0.02},
		{interp.Cubic, 1e-4},
		{interp.Spline, 1e-3},
	}

	for _, tc := range modes {
		d, err := New(size, WithMode(tc.mode))
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < size; i++ {
			d.Write(math.Sin(2 * math.Pi * freq * float64(i)))
		}

		delay := 20.37
		// Read(k) for integer k returns sample written at index (size-k),
		// so fractional delay d corresponds to sample index (size-d).
		exactSample := float64(size) - delay
		want := math.Sin(2 * math.Pi * freq * exactSample)
		got := d.ReadFractional(delay)

		if diff := math.Abs(got - want); diff > tc.tol {
			t.Fatalf("%v sine: got %v want %v (err=%e, tol=%e)", tc.mode, got, want, diff, tc.tol)
		}
	}
}

func TestReadMs(t *testing.T) {
	d, err := New(1024, WithSampleRate(1000))
	if err != nil {
		t.Fatal(err)
	}
	fillRamp(d)

	// 10 ms at 1 kHz is 10 samples.
	if got := d.ReadMs(10, interp.Linear); !approxEqual(got, 1014, 1e-9) {
		t.Fatalf("got %v want 1014", got)
	}
}

// --- benchmarks ---

func BenchmarkReadLinear(b *testing.B) {
	d, _ := New(1024)
	fillRamp(d)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.ReadMode(100.37, interp.Linear)
	}
}

func BenchmarkReadSpline(b *testing.B) {
	d, _ := New(1024)
	fillRamp(d)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.ReadMode(100.37, interp.Spline)
	}
}
