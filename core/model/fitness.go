package model

import "fmt"

// Fitness ranks a solution. Violations counts routes whose closed tour
// exceeds the vehicle autonomy; Distance is the sum of all route distances.
// Ordering is lexicographic: fewer violations always win, distance breaks
// ties. Lower is better.
type Fitness struct {
	Violations int     `json:"violations"`
	Distance   float64 `json:"distance"`
}

// Less reports whether f ranks strictly better than other.
func (f Fitness) Less(other Fitness) bool {
	if f.Violations != other.Violations {
		return f.Violations < other.Violations
	}
	return f.Distance < other.Distance
}

func (f Fitness) String() string {
	return fmt.Sprintf("violations=%d distance=%.2f", f.Violations, f.Distance)
}

// Evaluate computes the fitness of the solution for the given vehicle
// autonomy. Routes are summed in declaration order so repeated evaluations
// of the same solution are bit-identical.
func (s Solution) Evaluate(autonomy float64) Fitness {
	var fit Fitness
	for _, r := range s.Routes {
		d := r.Distance()
		fit.Distance += d
		if d > autonomy {
			fit.Violations++
		}
	}
	return fit
}
