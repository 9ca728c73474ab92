package rng

import (
	"math/rand"
	"time"
)

// Seeded is a reproducible generator backed by math/rand
// Tests use it to replay the same deal
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded returns a seeded generator. A seed of 0 uses the current time.
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number in [0, n)
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// Seed returns the seed the generator was created with
func (s *Seeded) Seed() int64 {
	return s.seed
}
