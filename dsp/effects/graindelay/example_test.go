package graindelay_test

import (
	"fmt"

	"github.com/cwbudde/algo-graindelay/dsp/effects/graindelay"
)

func ExampleGrainDelay_ProcessBlock() {
	g, err := graindelay.New(48000, graindelay.WithSeed(3))
	if err != nil {
		fmt.Println("error")
		return
	}

	p := graindelay.DefaultParams()
	p.Time = 250
	p.Feedback = 0.4
	g.ResetParams(p)

	in := make([]float64, 1024)
	in[0] = 1
	outL := make([]float64, len(in))
	outR := make([]float64, len(in))
	g.ProcessBlock(in, outL, outR, p)

	fmt.Printf("voices=%d latency=%d len=%d\n", g.Voices(), g.Latency(), len(outL))
	// Output:
	// voices=8 latency=2 len=1024
}

func ExampleParams_Sanitize() {
	p := graindelay.Params{Frequency: 400, Pitch: -30, Mix: 2, Filter: -1}
	s := p.Sanitize()

	fmt.Printf("frequency=%g pitch=%g mix=%g filter=%g\n", s.Frequency, s.Pitch, s.Mix, s.Filter)
	// Output:
	// frequency=150 pitch=-24 mix=1 filter=0
}
