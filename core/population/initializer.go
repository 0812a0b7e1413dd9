// Package population builds the initial solution pool for the evolutionary
// engine. Individuals are seeded by one of two strategies: a plain shuffle
// split, or planar k-means clustering followed by a balancing pass. Either
// way, stops inside a group are ordered by a greedy nearest-neighbor chain
// before they become a route.
package population

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/evoroute/core/geo"
	"github.com/kilianp07/evoroute/core/model"
)

// kmeansIterations bounds the clustering loop; the result does not need to
// converge, it only seeds the genetic search.
const kmeansIterations = 8

// Initializer creates random-yet-valid solutions for a fixed fleet and depot.
// All randomness flows through the injected source.
type Initializer struct {
	vehicles []string
	depotX   float64
	depotY   float64
	rng      *rand.Rand
}

// NewInitializer validates the fleet and returns an Initializer.
func NewInitializer(vehicles []string, depotX, depotY float64, rng *rand.Rand) (*Initializer, error) {
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("population: at least one vehicle is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("population: nil random source")
	}
	return &Initializer{
		vehicles: append([]string(nil), vehicles...),
		depotX:   depotX,
		depotY:   depotY,
		rng:      rng,
	}, nil
}

// NewPopulation builds size independent solutions over the given points.
// Every returned solution holds one route per vehicle and assigns each point
// to exactly one route. Routes may be empty when the fleet outnumbers the
// points.
func (in *Initializer) NewPopulation(points []model.Point, size int) ([]model.Solution, error) {
	if size < 1 {
		return nil, fmt.Errorf("population: size must be at least 1, got %d", size)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("population: no points to route")
	}
	sols := make([]model.Solution, size)
	for i := range sols {
		sols[i] = in.newSolution(points)
	}
	return sols, nil
}

func (in *Initializer) pickStrategy() Strategy {
	if in.rng.Float64() < randomStrategyWeight {
		return StrategyRandom
	}
	return StrategyCluster
}

func (in *Initializer) newSolution(points []model.Point) model.Solution {
	var groups [][]model.Point
	switch s := in.pickStrategy(); s {
	case StrategyRandom:
		groups = in.randomGroups(points)
	case StrategyCluster:
		groups = in.clusterGroups(points)
	default:
		panic(fmt.Sprintf("population: unhandled strategy %s", s))
	}
	routes := make([]model.Route, len(in.vehicles))
	for i := range routes {
		routes[i] = model.Route{
			ID:      fmt.Sprintf("route_%d", i+1),
			Vehicle: in.vehicles[i],
			DepotX:  in.depotX,
			DepotY:  in.depotY,
			Stops:   nearestNeighborOrder(in.depotX, in.depotY, groups[i]),
		}
	}
	return model.Solution{Routes: routes}
}

// randomGroups shuffles the points and slices them into contiguous chunks of
// ceil(n/k), leaving trailing groups empty when the points run out.
func (in *Initializer) randomGroups(points []model.Point) [][]model.Point {
	k := len(in.vehicles)
	shuffled := clonePoints(points)
	in.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	chunk := (len(shuffled) + k - 1) / k
	groups := make([][]model.Point, k)
	for i := 0; i < k; i++ {
		lo := i * chunk
		if lo >= len(shuffled) {
			break
		}
		hi := lo + chunk
		if hi > len(shuffled) {
			hi = len(shuffled)
		}
		groups[i] = shuffled[lo:hi]
	}
	return groups
}

// clusterGroups runs a few k-means rounds with k = len(vehicles) and then
// rebalances the clusters so no vehicle starts starved or overloaded.
func (in *Initializer) clusterGroups(points []model.Point) [][]model.Point {
	k := len(in.vehicles)
	type coord struct{ x, y float64 }
	centroids := make([]coord, k)
	for i := range centroids {
		p := points[in.rng.Intn(len(points))]
		centroids[i] = coord{p.X, p.Y}
	}
	var groups [][]model.Point
	for iter := 0; iter < kmeansIterations; iter++ {
		groups = make([][]model.Point, k)
		for _, p := range points {
			best := 0
			bestDist := geo.Distance(p.X, p.Y, centroids[0].x, centroids[0].y)
			for c := 1; c < k; c++ {
				if d := geo.Distance(p.X, p.Y, centroids[c].x, centroids[c].y); d < bestDist {
					best, bestDist = c, d
				}
			}
			groups[best] = append(groups[best], p)
		}
		for c := range centroids {
			if len(groups[c]) == 0 {
				// reseed dead centroids so they compete again next round
				p := points[in.rng.Intn(len(points))]
				centroids[c] = coord{p.X, p.Y}
				continue
			}
			var sx, sy float64
			for _, p := range groups[c] {
				sx += p.X
				sy += p.Y
			}
			n := float64(len(groups[c]))
			centroids[c] = coord{sx / n, sy / n}
		}
	}
	return in.rebalance(groups, len(points))
}

// rebalance moves stops between groups until every group holds either
// floor(n/k) or floor(n/k)+1 stops.
func (in *Initializer) rebalance(groups [][]model.Point, n int) [][]model.Point {
	k := len(groups)
	target := n / k
	var pool []model.Point
	for i := range groups {
		for len(groups[i]) > target+1 {
			last := len(groups[i]) - 1
			pool = append(pool, groups[i][last])
			groups[i] = groups[i][:last]
		}
	}
	for i := range groups {
		for len(groups[i]) < target {
			if len(pool) == 0 {
				j := largestGroup(groups)
				last := len(groups[j]) - 1
				pool = append(pool, groups[j][last])
				groups[j] = groups[j][:last]
			}
			last := len(pool) - 1
			groups[i] = append(groups[i], pool[last])
			pool = pool[:last]
		}
	}
	for i := 0; len(pool) > 0 && i < k; i++ {
		if len(groups[i]) == target {
			last := len(pool) - 1
			groups[i] = append(groups[i], pool[last])
			pool = pool[:last]
		}
	}
	return groups
}

func largestGroup(groups [][]model.Point) int {
	best := 0
	for i := 1; i < len(groups); i++ {
		if len(groups[i]) > len(groups[best]) {
			best = i
		}
	}
	return best
}

// nearestNeighborOrder chains the stops greedily, always visiting the closest
// remaining stop next, starting from the depot. Ties keep the earliest
// candidate so the ordering is deterministic.
func nearestNeighborOrder(depotX, depotY float64, stops []model.Point) []model.Point {
	if len(stops) == 0 {
		return nil
	}
	remaining := clonePoints(stops)
	ordered := make([]model.Point, 0, len(stops))
	cx, cy := depotX, depotY
	for len(remaining) > 0 {
		best := 0
		bestDist := geo.Distance(cx, cy, remaining[0].X, remaining[0].Y)
		for i := 1; i < len(remaining); i++ {
			if d := geo.Distance(cx, cy, remaining[i].X, remaining[i].Y); d < bestDist {
				best, bestDist = i, d
			}
		}
		next := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)
		ordered = append(ordered, next)
		cx, cy = next.X, next.Y
	}
	return ordered
}

func clonePoints(pts []model.Point) []model.Point {
	out := make([]model.Point, len(pts))
	copy(out, pts)
	return out
}
