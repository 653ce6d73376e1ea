package testutil

// SequenceRand replays a fixed list of values from Float64, cycling when the
// list is exhausted. An empty sequence always returns 0.
type SequenceRand struct {
	Values []float64
	next   int
}

// NewSequenceRand returns a SequenceRand over values.
func NewSequenceRand(values ...float64) *SequenceRand {
	return &SequenceRand{Values: values}
}

// Float64 returns the next value of the sequence.
func (s *SequenceRand) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Calls returns how many values have been drawn.
func (s *SequenceRand) Calls() int { return s.next }
