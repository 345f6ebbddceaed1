package game

import "math/rand"

// Source is the randomness the engine needs. *rand.Rand satisfies it, so tests
// can pass rand.New(rand.NewSource(seed)) or a scripted fake.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalSource forwards to math/rand's auto-seeded top-level functions.
type globalSource struct{}

func (globalSource) Intn(n int) int                     { return rand.Intn(n) }
func (globalSource) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultSource returns the process-wide, non-reproducible source.
func DefaultSource() Source { return globalSource{} }
