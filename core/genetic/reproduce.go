package genetic

import (
	"math/rand"

	"github.com/kilianp07/evoroute/core/model"
)

// Reproduce derives one child from two parents: order crossover followed by
// an independent mutation draw for every route.
func Reproduce(rng *rand.Rand, parent1, parent2 model.Solution, mutationProb float64) model.Solution {
	child := Crossover(rng, parent1, parent2)
	for i := range child.Routes {
		child.Routes[i] = MutateRoute(rng, child.Routes[i], mutationProb)
	}
	return child
}
