package calculation

import (
	"math/rand/v2"
	"time"
)

// seedFunc returns a base seed when the caller gives none (override for deterministic tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// trialSource derives the random stream for one trial from the run's base
// seed and the trial index, so results do not depend on which worker runs
// which trial or in what order.
func trialSource(seed int64, trial int) rand.Source {
	return rand.NewPCG(uint64(seed), uint64(trial))
}
