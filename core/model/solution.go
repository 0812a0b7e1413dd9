package model

import "fmt"

// Solution assigns every stop of the problem to exactly one route. It always
// holds one route per vehicle; routes may be empty when there are more
// vehicles than stops.
type Solution struct {
	Routes []Route `json:"routes"`
}

// Clone returns a deep copy of the solution.
func (s Solution) Clone() Solution {
	routes := make([]Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.Clone()
	}
	return Solution{Routes: routes}
}

// Equal reports whether both solutions contain the same routes in the same
// order. It is the change detector for best-solution exports.
func (s Solution) Equal(other Solution) bool {
	if len(s.Routes) != len(other.Routes) {
		return false
	}
	for i := range s.Routes {
		if !s.Routes[i].Equal(other.Routes[i]) {
			return false
		}
	}
	return true
}

// Stops returns all stops of the solution in route order.
func (s Solution) Stops() []Point {
	var out []Point
	for _, r := range s.Routes {
		out = append(out, r.Stops...)
	}
	return out
}

// Validate checks the partition invariant: every given point appears in
// exactly one route and no route contains a stop outside the point set.
func (s Solution) Validate(points []Point) error {
	want := make(map[string]struct{}, len(points))
	for _, p := range points {
		want[p.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(points))
	for _, r := range s.Routes {
		for _, p := range r.Stops {
			if _, ok := want[p.ID]; !ok {
				return fmt.Errorf("route %s contains unknown stop %s", r.ID, p.ID)
			}
			if _, dup := seen[p.ID]; dup {
				return fmt.Errorf("stop %s assigned to more than one route", p.ID)
			}
			seen[p.ID] = struct{}{}
		}
	}
	if len(seen) != len(want) {
		return fmt.Errorf("solution covers %d of %d stops", len(seen), len(want))
	}
	return nil
}
