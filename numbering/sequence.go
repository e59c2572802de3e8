package numbering

import (
	"context"
	"sync"
)

// Sequence is an allocation authority that issues the next sequence value
// for a year. Implementations decide durability: the pure derive-from-set
// NextNumber function remains the source of truth, a Sequence exists so
// concurrent writers can be serialized behind one counter.
type Sequence interface {
	// Next returns the next unissued sequence value for the year
	Next(ctx context.Context, year int) (int, error)
}

// MemorySequence is an in-process, mutex-guarded counter. It does not
// survive restarts and must not be shared across processes; it exists for
// single-writer demos and tests. Use RedisSequence for anything durable.
type MemorySequence struct {
	mu       sync.Mutex
	counters map[int]int
}

// NewMemorySequence creates an empty in-process sequence
func NewMemorySequence() *MemorySequence {
	return &MemorySequence{
		counters: make(map[int]int),
	}
}

// Seed initializes a year's counter from the set of already-issued numbers.
// Invalid numbers are skipped, matching NextNumber.
func (s *MemorySequence) Seed(year int, existing []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxSeq := s.counters[year]
	for _, number := range existing {
		parsed, ok := Parse(number)
		if !ok || parsed.Year != year {
			continue
		}
		if parsed.Sequence > maxSeq {
			maxSeq = parsed.Sequence
		}
	}
	s.counters[year] = maxSeq
}

// Next returns the next sequence value for the year
func (s *MemorySequence) Next(ctx context.Context, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[year]++
	return s.counters[year], nil
}
