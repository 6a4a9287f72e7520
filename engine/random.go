package engine

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform floats in [0, 1)
// *rand.Rand satisfies it directly
type RandomSource interface {
	Float64() float64
}

// NewSeededRandom returns a PCG-backed source; seed 0 picks a random seed
func NewSeededRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// SequenceRandom replays a fixed sequence of values, cycling when exhausted
// Used by tests to pin jitter, positional error and skip rolls
type SequenceRandom struct {
	mu     sync.Mutex
	values []float64
	next   int
	calls  int
}

// NewSequenceRandom creates a cycling source; an empty sequence always yields 0.5
func NewSequenceRandom(values ...float64) *SequenceRandom {
	return &SequenceRandom{values: values}
}

// Float64 returns the next value in the sequence
func (s *SequenceRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Calls returns how many values have been drawn
func (s *SequenceRandom) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
