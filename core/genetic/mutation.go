package genetic

import (
	"math/rand"

	"github.com/kilianp07/evoroute/core/model"
)

// MutateRoute returns a copy of the route, swapping one uniformly chosen pair
// of adjacent stops with the given probability. Routes with fewer than two
// stops pass through untouched. prob 0 never swaps, prob 1 always does.
func MutateRoute(rng *rand.Rand, route model.Route, prob float64) model.Route {
	out := route.Clone()
	if rng.Float64() >= prob {
		return out
	}
	if len(out.Stops) < 2 {
		return out
	}
	i := rng.Intn(len(out.Stops) - 1)
	out.Stops[i], out.Stops[i+1] = out.Stops[i+1], out.Stops[i]
	return out
}
