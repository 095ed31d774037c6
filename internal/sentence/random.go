package sentence

import (
	"math/rand"
	"time"
)

// RandomSource supplies the draws for decorations and random selections.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NewSeededSource returns a reproducible source. Seed 0 means time-based.
func NewSeededSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// bernoulli always consumes one draw, so the draw sequence does not depend
// on the configured probabilities.
func bernoulli(rnd RandomSource, p float64) bool {
	return rnd.Float64() < p
}

func choose(rnd RandomSource, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rnd.Intn(len(items))]
}
