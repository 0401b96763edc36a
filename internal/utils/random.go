package utils

import (
	"math/rand"
	"sync"
	"time"
)

var randSeedOnce sync.Once

// ensureRandSeeded initializes the global math/rand source once.
// The top-level math/rand functions use a locked source internally
// and are safe for concurrent use after seeding.
func ensureRandSeeded() {
	randSeedOnce.Do(func() {
		rand.Seed(time.Now().UnixNano())
	})
}

// RandomFloatInRange returns a uniformly distributed value in [min, max).
// Used by the backfill generator to synthesize plausible power readings.
func RandomFloatInRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	ensureRandSeeded()
	return min + rand.Float64()*(max-min)
}
