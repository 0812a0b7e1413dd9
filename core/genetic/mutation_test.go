package genetic

import (
	"math/rand"
	"testing"

	"github.com/kilianp07/evoroute/core/model"
)

func TestMutateRoute_NeverAtZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	route := model.Route{ID: "route_1", Stops: seqOf("A", "B", "C", "D")}
	for i := 0; i < 100; i++ {
		if got := MutateRoute(rng, route, 0); !got.Equal(route) {
			t.Fatalf("iteration %d: mutation applied at probability 0", i)
		}
	}
}

func TestMutateRoute_AlwaysAtOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	route := model.Route{ID: "route_1", Stops: seqOf("A", "B", "C", "D")}
	for i := 0; i < 100; i++ {
		got := MutateRoute(rng, route, 1)
		swaps := 0
		swapAt := -1
		for j := range route.Stops {
			if got.Stops[j].ID != route.Stops[j].ID {
				if swapAt == -1 {
					swapAt = j
				}
				swaps++
			}
		}
		if swaps != 2 {
			t.Fatalf("iteration %d: expected exactly one adjacent swap, %d stops moved", i, swaps)
		}
		if got.Stops[swapAt].ID != route.Stops[swapAt+1].ID || got.Stops[swapAt+1].ID != route.Stops[swapAt].ID {
			t.Fatalf("iteration %d: moved stops are not adjacent partners", i)
		}
	}
}

func TestMutateRoute_ShortRoutes(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	single := model.Route{ID: "route_1", Stops: seqOf("A")}
	if got := MutateRoute(rng, single, 1); !got.Equal(single) {
		t.Fatal("single-stop route must pass through unchanged")
	}
	empty := model.Route{ID: "route_2"}
	if got := MutateRoute(rng, empty, 1); len(got.Stops) != 0 {
		t.Fatal("empty route must stay empty")
	}
}

func TestMutateRoute_InputUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	route := model.Route{ID: "route_1", Stops: seqOf("A", "B", "C")}
	want := route.Clone()
	for i := 0; i < 20; i++ {
		_ = MutateRoute(rng, route, 1)
	}
	if !route.Equal(want) {
		t.Fatal("mutation modified its input route")
	}
}

func TestReproduce_ValidChild(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	p1, p2, pts := twoParentSolutions(t, rng)
	for i := 0; i < 50; i++ {
		child := Reproduce(rng, p1, p2, 0.5)
		if err := child.Validate(pts); err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
	}
}
