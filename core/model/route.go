package model

import "github.com/kilianp07/evoroute/core/geo"

// Route is the ordered list of stops assigned to one vehicle. Every route
// starts and ends at the depot. Stops must not repeat within a route.
type Route struct {
	ID      string  `json:"id"`
	Vehicle string  `json:"vehicle"`
	DepotX  float64 `json:"depot_x"`
	DepotY  float64 `json:"depot_y"`
	Stops   []Point `json:"stops"`
}

// Distance returns the length of the closed tour
// depot -> stops[0] -> ... -> stops[n-1] -> depot.
// An empty route has distance zero.
func (r Route) Distance() float64 {
	if len(r.Stops) == 0 {
		return 0
	}
	total := geo.Distance(r.DepotX, r.DepotY, r.Stops[0].X, r.Stops[0].Y)
	for i := 0; i < len(r.Stops)-1; i++ {
		total += geo.Distance(r.Stops[i].X, r.Stops[i].Y, r.Stops[i+1].X, r.Stops[i+1].Y)
	}
	last := r.Stops[len(r.Stops)-1]
	return total + geo.Distance(last.X, last.Y, r.DepotX, r.DepotY)
}

// Clone returns a deep copy of the route.
func (r Route) Clone() Route {
	out := r
	out.Stops = make([]Point, len(r.Stops))
	copy(out.Stops, r.Stops)
	return out
}

// Equal reports whether both routes visit the same stops in the same order
// for the same vehicle.
func (r Route) Equal(other Route) bool {
	if r.ID != other.ID || r.Vehicle != other.Vehicle {
		return false
	}
	if r.DepotX != other.DepotX || r.DepotY != other.DepotY {
		return false
	}
	if len(r.Stops) != len(other.Stops) {
		return false
	}
	for i := range r.Stops {
		if r.Stops[i] != other.Stops[i] {
			return false
		}
	}
	return true
}
