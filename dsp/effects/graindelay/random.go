package graindelay

import "math/rand"

// Rand is the random source grains draw their trigger parameters from.
// Float64 must return values in [0, 1).
type Rand interface {
	Float64() float64
}

// seeder is implemented by sources that can be rewound, such as *rand.Rand.
type seeder interface {
	Seed(seed int64)
}

const defaultSeed = 1

func newDefaultRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
