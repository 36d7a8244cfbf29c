// Package rng provides the injected random source and weighted pickers.
// Every random decision of a generation run flows through one Random so that a
// seed fully determines the output.
package rng

import (
	"math/rand"
)

// Random is the random source consumed by the layout engine.
type Random interface {
	// Next returns a non-negative pseudo-random int.
	Next() int
	// NextN returns a value in [0, n). n must be positive.
	NextN(n int) int
	// NextRange returns a value in [min, max). Returns min when max <= min.
	NextRange(min, max int) int
	// NextDouble returns a value in [0, 1).
	NextDouble() float64
	// Seed returns the seed the source was created with.
	Seed() int64
}

// ReRandom is a reproducible Random backed by math/rand with an explicit source.
type ReRandom struct {
	seed int64
	r    *rand.Rand
}

// New creates a random source for the given seed
func New(seed int64) *ReRandom {
	return &ReRandom{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with
func (r *ReRandom) Seed() int64 {
	return r.seed
}

func (r *ReRandom) Next() int {
	return r.r.Int()
}

func (r *ReRandom) NextN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.Intn(n)
}

func (r *ReRandom) NextRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.Intn(max-min)
}

func (r *ReRandom) NextDouble() float64 {
	return r.r.Float64()
}

// Chance returns true with the given probability in percent.
func Chance(r Random, percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return r.NextN(100) < percent
}

// Shuffle permutes items in place using r.
func Shuffle[T any](r Random, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.NextN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
