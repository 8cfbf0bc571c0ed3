package mcts

import (
	"math"
	"math/rand"
	"time"

	"github.com/seehuhn/mt19937"
)

type SeedGeneratorFnType func() int64

// Exploration parameter used in the UCT formula, higher values increase
// exploration while lower values increase exploitation.
// Default is sqrt(2), the theoretical value for rewards in [0, 1].
var ExplorationParam float64 = math.Sqrt2

// Set the default exploration parameter for newly created trees
func SetExplorationParam(c float64) {
	ExplorationParam = max(0.0, c)
}

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for random number generators in MCTS,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

// Default random source for expansion and rollouts, a Mersenne Twister
// seeded by SeedGeneratorFn. Replace per tree with SetRand.
func newDefaultRand() *rand.Rand {
	src := mt19937.New()
	src.Seed(SeedGeneratorFn())
	return rand.New(src)
}
