package population

import (
	"math/rand"
	"testing"

	"github.com/kilianp07/evoroute/core/model"
)

func TestNewInitializer_Validation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewInitializer(nil, 0, 0, rng); err == nil {
		t.Fatal("expected error for empty fleet")
	}
	if _, err := NewInitializer([]string{"equipment_1"}, 0, 0, nil); err == nil {
		t.Fatal("expected error for nil random source")
	}
}

func TestNewPopulation_PartitionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := GeneratePoints(rng, 6, 100, 100, 10)
	in, err := NewInitializer([]string{"equipment_1", "equipment_2"}, 50, 50, rng)
	if err != nil {
		t.Fatalf("initializer: %v", err)
	}
	pop, err := in.NewPopulation(points, 4)
	if err != nil {
		t.Fatalf("population: %v", err)
	}
	if len(pop) != 4 {
		t.Fatalf("expected 4 solutions, got %d", len(pop))
	}
	for i, sol := range pop {
		if len(sol.Routes) != 2 {
			t.Fatalf("solution %d: expected 2 routes, got %d", i, len(sol.Routes))
		}
		if err := sol.Validate(points); err != nil {
			t.Fatalf("solution %d: %v", i, err)
		}
		for j, r := range sol.Routes {
			if r.Vehicle == "" || r.ID == "" {
				t.Fatalf("solution %d route %d: missing identity", i, j)
			}
			if r.DepotX != 50 || r.DepotY != 50 {
				t.Fatalf("solution %d route %d: depot not carried", i, j)
			}
		}
	}
}

func TestNewPopulation_MoreVehiclesThanPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := GeneratePoints(rng, 2, 100, 100, 0)
	vehicles := []string{"equipment_1", "equipment_2", "equipment_3", "equipment_4"}
	in, err := NewInitializer(vehicles, 0, 0, rng)
	if err != nil {
		t.Fatalf("initializer: %v", err)
	}
	pop, err := in.NewPopulation(points, 10)
	if err != nil {
		t.Fatalf("population: %v", err)
	}
	for i, sol := range pop {
		if len(sol.Routes) != len(vehicles) {
			t.Fatalf("solution %d: expected %d routes, got %d", i, len(vehicles), len(sol.Routes))
		}
		if err := sol.Validate(points); err != nil {
			t.Fatalf("solution %d: %v", i, err)
		}
	}
}

func TestNewPopulation_Validation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	in, err := NewInitializer([]string{"equipment_1"}, 0, 0, rng)
	if err != nil {
		t.Fatalf("initializer: %v", err)
	}
	if _, err := in.NewPopulation(nil, 3); err == nil {
		t.Fatal("expected error for empty point set")
	}
	pts := []model.Point{{ID: "point_1"}}
	if _, err := in.NewPopulation(pts, 0); err == nil {
		t.Fatal("expected error for zero population size")
	}
}

func TestRebalance_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in, err := NewInitializer([]string{"a", "b", "c"}, 0, 0, rng)
	if err != nil {
		t.Fatalf("initializer: %v", err)
	}
	pts := GeneratePoints(rng, 8, 100, 100, 0)
	// worst case: everything lands in one group
	groups := [][]model.Point{clonePoints(pts), nil, nil}
	groups = in.rebalance(groups, len(pts))
	target := len(pts) / 3
	total := 0
	for i, g := range groups {
		if len(g) < target || len(g) > target+1 {
			t.Fatalf("group %d size %d outside [%d, %d]", i, len(g), target, target+1)
		}
		total += len(g)
	}
	if total != len(pts) {
		t.Fatalf("rebalance lost stops: %d of %d", total, len(pts))
	}
}

func TestClusterGroups_BalancedAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in, err := NewInitializer([]string{"a", "b", "c"}, 0, 0, rng)
	if err != nil {
		t.Fatalf("initializer: %v", err)
	}
	pts := GeneratePoints(rng, 10, 500, 500, 10)
	groups := in.clusterGroups(pts)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	target := len(pts) / 3
	seen := map[string]bool{}
	for i, g := range groups {
		if len(g) < target || len(g) > target+1 {
			t.Fatalf("group %d size %d outside [%d, %d]", i, len(g), target, target+1)
		}
		for _, p := range g {
			if seen[p.ID] {
				t.Fatalf("stop %s in two groups", p.ID)
			}
			seen[p.ID] = true
		}
	}
	if len(seen) != len(pts) {
		t.Fatalf("groups cover %d of %d stops", len(seen), len(pts))
	}
}

func TestNearestNeighborOrder(t *testing.T) {
	stops := []model.Point{
		{ID: "far", X: 10, Y: 0},
		{ID: "near", X: 1, Y: 0},
		{ID: "mid", X: 5, Y: 0},
	}
	got := nearestNeighborOrder(0, 0, stops)
	want := []string{"near", "mid", "far"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if nearestNeighborOrder(0, 0, nil) != nil {
		t.Fatal("empty input should stay empty")
	}
}

func TestStrategyString(t *testing.T) {
	if StrategyRandom.String() != "random" || StrategyCluster.String() != "cluster" {
		t.Fatal("unexpected strategy names")
	}
	if Strategy(99).String() != "unknown" {
		t.Fatal("out-of-range strategy should be unknown")
	}
}

func TestPickStrategy_FollowsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	in, err := NewInitializer([]string{"a"}, 0, 0, rng)
	if err != nil {
		t.Fatalf("initializer: %v", err)
	}
	counts := map[Strategy]int{}
	const draws = 2000
	for i := 0; i < draws; i++ {
		counts[in.pickStrategy()]++
	}
	random := float64(counts[StrategyRandom]) / draws
	if random < 0.15 || random > 0.25 {
		t.Fatalf("random strategy share %f outside expected band around 0.2", random)
	}
}
