package graindelay

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDefaultParamsAreValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}
	if err := testParams().Validate(); err != nil {
		t.Fatalf("testParams().Validate() = %v", err)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	p := Params{
		Spray:     -1,
		Frequency: 0,
		Pitch:     25,
		Drift:     2,
		Reverse:   -0.1,
		Time:      6000,
		Feedback:  1.5,
		Filter:    10,
		Spread:    math.NaN(),
		Mix:       math.Inf(1),
	}

	err := p.Validate()
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("Validate() error = %v, want ErrInvalidParam", err)
	}
	for _, name := range []string{"spray", "frequency", "pitch", "drift", "reverse", "time", "feedback", "filter", "spread", "mix"} {
		if !strings.Contains(err.Error(), name+"=") {
			t.Fatalf("error does not mention %s: %v", name, err)
		}
	}
}

func TestValidateFilterBypass(t *testing.T) {
	p := DefaultParams()
	for _, filter := range []float64{0, MinFilter, 1000, MaxFilter} {
		p.Filter = filter
		if err := p.Validate(); err != nil {
			t.Fatalf("filter=%g: %v", filter, err)
		}
	}
	for _, filter := range []float64{-1, 19, 20001} {
		p.Filter = filter
		if err := p.Validate(); !errors.Is(err, ErrInvalidParam) {
			t.Fatalf("filter=%g: error = %v, want ErrInvalidParam", filter, err)
		}
	}
}

func TestSanitize(t *testing.T) {
	nan := math.NaN()
	def := DefaultParams()

	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{
			name: "in range unchanged",
			in:   testParams(),
			want: testParams(),
		},
		{
			name: "clamped high",
			in:   Params{Spray: 900, Frequency: 300, Pitch: 48, Drift: 3, Reverse: 2, Time: 1e6, Feedback: 2, Filter: 1e5, Spread: 4, Mix: 5},
			want: Params{Spray: MaxSpray, Frequency: MaxFrequency, Pitch: MaxPitch, Drift: 1, Reverse: 1, Time: MaxEchoTime, Feedback: 1, Filter: MaxFilter, Spread: 1, Mix: 1},
		},
		{
			name: "clamped low",
			in:   Params{Spray: -5, Frequency: -1, Pitch: -48, Drift: -1, Reverse: -1, Time: -10, Feedback: -1, Filter: 5, Spread: -1, Mix: -1},
			want: Params{Frequency: MinFrequency, Pitch: -MaxPitch, Filter: MinFilter},
		},
		{
			name: "nan uses defaults",
			in:   Params{Spray: nan, Frequency: nan, Pitch: nan, Drift: nan, Reverse: nan, Time: nan, Feedback: nan, Filter: nan, Spread: nan, Mix: nan},
			want: def,
		},
		{
			name: "negative filter bypasses",
			in:   Params{Frequency: 10, Filter: -100},
			want: Params{Frequency: 10},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Sanitize(); got != tc.want {
				t.Fatalf("Sanitize():\n got=%+v\nwant=%+v", got, tc.want)
			}
		})
	}
}

func TestSanitizedParamsValidate(t *testing.T) {
	inf := math.Inf(1)
	for _, p := range []Params{
		{Spray: inf, Frequency: -inf, Pitch: inf, Time: -inf, Feedback: inf, Filter: inf, Mix: -inf},
		{Frequency: 0, Filter: 1},
	} {
		if err := p.Sanitize().Validate(); err != nil {
			t.Fatalf("Sanitize(%+v).Validate() = %v", p, err)
		}
	}
}
