package climate

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Rand is the draw source for daily weather generation.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewSeededRand returns a deterministic source for the given seed.
func NewSeededRand(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

type globalRand struct{}

// #nosec G404
func (globalRand) Float64() float64 { return rand.Float64() }

// #nosec G404
func (globalRand) IntN(n int) int { return rand.IntN(n) }
