package rng

import (
	"tilelayout/pkg/engine/fault"
)

type spawnEntry[T any] struct {
	item   T
	weight int
}

// SpawnList is a weighted picker. Entries keep their insertion order so that a
// given seed always resolves to the same outcome.
type SpawnList[T any] struct {
	entries []spawnEntry[T]
	total   int
}

// NewSpawnList creates an empty picker
func NewSpawnList[T any]() *SpawnList[T] {
	return &SpawnList[T]{}
}

// Add appends an outcome with a non-negative weight. Negative weights count as zero.
func (s *SpawnList[T]) Add(item T, weight int) {
	if weight < 0 {
		weight = 0
	}
	s.entries = append(s.entries, spawnEntry[T]{item: item, weight: weight})
	s.total += weight
}

// Len returns the number of outcomes, including zero-weight ones.
func (s *SpawnList[T]) Len() int {
	return len(s.entries)
}

// TotalWeight returns the sum of all weights.
func (s *SpawnList[T]) TotalWeight() int {
	return s.total
}

// CanPick reports whether Pick can succeed.
func (s *SpawnList[T]) CanPick() bool {
	return s != nil && s.total > 0
}

// Each calls fn for every outcome in insertion order.
func (s *SpawnList[T]) Each(fn func(item T, weight int)) {
	for _, e := range s.entries {
		fn(e.item, e.weight)
	}
}

// Pick returns a weighted random outcome. A list with zero total weight is a
// configuration error.
func (s *SpawnList[T]) Pick(r Random) (T, error) {
	var zero T
	if !s.CanPick() {
		return zero, fault.Configf("spawn list has zero total weight")
	}
	roll := r.NextN(s.total)
	for _, e := range s.entries {
		if roll < e.weight {
			return e.item, nil
		}
		roll -= e.weight
	}
	return zero, fault.Configf("spawn list roll %d out of range", roll)
}
