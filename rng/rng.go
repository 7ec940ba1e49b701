// Package rng provides the random sources used to scatter and nudge objects.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// Rand wraps math/rand with a mutex so it can be shared between the
// frame loop and transport goroutines.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New creates a seeded source. A zero seed selects a time-based seed.
func New(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next uniform value in [0, 1).
func (s *Rand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Sequence replays a fixed list of values, cycling when exhausted.
// Useful wherever a test needs to pin down exact impulses or positions.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
	calls  int
}

// NewSequence creates a sequence source. An empty list always yields 0.5.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value in the sequence.
func (s *Sequence) Float64() float64 {
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

// Calls reports how many values have been drawn.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Centered maps a uniform draw to [-scale/2, scale/2).
func Centered(src Source, scale float64) float64 {
	return (src.Float64() - 0.5) * scale
}
