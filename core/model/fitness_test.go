package model

import (
	"math"
	"testing"
)

func twoRouteSolution() Solution {
	return Solution{Routes: []Route{
		{
			ID:      "route_1",
			Vehicle: "equipment_1",
			Stops:   []Point{{ID: "point_1", X: 3, Y: 0}, {ID: "point_2", X: 3, Y: 4}},
		},
		{
			ID:      "route_2",
			Vehicle: "equipment_2",
			Stops:   []Point{{ID: "point_3", X: 0, Y: 4}},
		},
	}}
}

func TestEvaluate_ViolationCount(t *testing.T) {
	s := twoRouteSolution()
	// route_1 tour = 12, route_2 tour = 8
	fit := s.Evaluate(10)
	if fit.Violations != 1 {
		t.Fatalf("autonomy 10: expected 1 violation, got %d", fit.Violations)
	}
	if math.Abs(fit.Distance-20) > 1e-9 {
		t.Fatalf("expected total distance 20, got %f", fit.Distance)
	}

	fit = s.Evaluate(15)
	if fit.Violations != 0 {
		t.Fatalf("autonomy 15: expected 0 violations, got %d", fit.Violations)
	}
}

func TestFitnessLess_Lexicographic(t *testing.T) {
	cases := []struct {
		name string
		a, b Fitness
		want bool
	}{
		{"fewer violations beat shorter distance", Fitness{Violations: 0, Distance: 500}, Fitness{Violations: 1, Distance: 10}, true},
		{"distance breaks ties", Fitness{Violations: 2, Distance: 10}, Fitness{Violations: 2, Distance: 11}, true},
		{"equal is not less", Fitness{Violations: 1, Distance: 5}, Fitness{Violations: 1, Distance: 5}, false},
		{"worse violations", Fitness{Violations: 3, Distance: 1}, Fitness{Violations: 0, Distance: 100}, false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Errorf("%s: Less(%v, %v) = %v, want %v", c.name, c.a, c.b, got, c.want)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	s := twoRouteSolution()
	first := s.Evaluate(10)
	for i := 0; i < 5; i++ {
		if got := s.Evaluate(10); got != first {
			t.Fatalf("evaluation not stable: %v vs %v", got, first)
		}
	}
}
