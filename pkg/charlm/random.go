package charlm

import (
	"math/rand/v2"
)

// RandSource supplies the uniform draws used for sampling. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// newSeededSource returns a reproducible source: the same seed always yields
// the same sequence of draws.
func newSeededSource(seed int64) RandSource {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// newEntropySource returns a source seeded from the runtime's entropy pool.
func newEntropySource() RandSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
