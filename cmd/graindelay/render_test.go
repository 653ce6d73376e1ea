package main

import (
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-graindelay/dsp/core"
	"github.com/cwbudde/algo-graindelay/dsp/effects/graindelay"
	"github.com/cwbudde/algo-graindelay/dsp/interp"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(dir string) renderConfig {
	return renderConfig{
		out:       filepath.Join(dir, "out.wav"),
		processor: core.ApplyProcessorOptions(core.WithSampleRate(8000), core.WithBlockSize(100)),
		seconds:   0.5,
		tail:      0.25,
		seed:      3,
		overlap:   graindelay.DefaultOverlap,
		grainMode: interp.Linear,
		echoMode:  interp.Linear,
		params:    graindelay.DefaultParams(),
	}
}

func TestRenderGeneratedInput(t *testing.T) {
	cfg := testConfig(t.TempDir())

	stats, err := render(cfg, quietLogger())
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("channel stats: got=%d want=2", len(stats))
	}
	for _, s := range stats {
		if s.peak <= 0 || s.rms <= 0 || s.rms > s.peak {
			t.Fatalf("%s: implausible levels peak=%g rms=%g", s.name, s.peak, s.rms)
		}
	}

	mono, sampleRate, err := readWav(cfg.out, quietLogger())
	if err != nil {
		t.Fatalf("readWav() error = %v", err)
	}
	if sampleRate != 8000 {
		t.Fatalf("sample rate: got=%d want=8000", sampleRate)
	}
	if want := 6000; len(mono) != want {
		t.Fatalf("frames: got=%d want=%d", len(mono), want)
	}
	for i, x := range mono {
		if math.Abs(x) > 1 {
			t.Fatalf("frame %d out of range: %g", i, x)
		}
	}
}

func TestRenderReadsInputFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.in = filepath.Join(dir, "in.wav")
	cfg.tail = 0

	in := noiseBursts(1, 8000, 4000)
	if err := writeWav(cfg.in, 8000, in, in); err != nil {
		t.Fatalf("writeWav() error = %v", err)
	}

	if _, err := render(cfg, quietLogger()); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	out, _, err := readWav(cfg.out, quietLogger())
	if err != nil {
		t.Fatalf("readWav() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("frames: got=%d want=%d", len(out), len(in))
	}
}

func TestReadWavDownmixesToMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	left := []float64{0.5, -0.5, 0.25, 0}
	right := []float64{0.5, 0.5, -0.25, 1}
	if err := writeWav(path, 44100, left, right); err != nil {
		t.Fatalf("writeWav() error = %v", err)
	}

	mono, _, err := readWav(path, quietLogger())
	if err != nil {
		t.Fatalf("readWav() error = %v", err)
	}
	want := []float64{0.5, 0, 0, 0.5}
	for i := range want {
		if math.Abs(mono[i]-want[i]) > 1e-4 {
			t.Fatalf("index %d: got=%g want=%g", i, mono[i], want[i])
		}
	}
}

func TestRenderRejectsMissingInput(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.in = filepath.Join(t.TempDir(), "missing.wav")

	if _, err := render(cfg, quietLogger()); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestNoiseBurstsAreGated(t *testing.T) {
	x := noiseBursts(7, 1000, 2000)
	for i := 250; i < 1000; i++ {
		if x[i] != 0 {
			t.Fatalf("index %d: expected silence between bursts, got %g", i, x[i])
		}
	}
	var energy float64
	for _, v := range x[:250] {
		energy += v * v
	}
	if energy == 0 {
		t.Fatal("first burst is silent")
	}
}
