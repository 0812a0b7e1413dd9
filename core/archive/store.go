// Package archive defines the persistence contract for best solutions. Every
// time the engine finds a best solution with new content it appends one
// Record; downstream consumers (export CLI, HTTP API) read them back
// through Query.
package archive

import (
	"context"
	"time"

	"github.com/kilianp07/evoroute/core/model"
)

// StopRecord is the serialized form of a visited point.
type StopRecord struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// RouteRecord is the serialized form of one vehicle tour.
type RouteRecord struct {
	ID       string       `json:"id"`
	Vehicle  string       `json:"vehicle"`
	DepotX   float64      `json:"depot_x"`
	DepotY   float64      `json:"depot_y"`
	Distance float64      `json:"distance"`
	Stops    []StopRecord `json:"stops"`
}

// Record captures one exported best solution.
type Record struct {
	RunID      string        `json:"run_id"`
	Generation int           `json:"generation"`
	Violations int           `json:"violations"`
	Distance   float64       `json:"distance"`
	Timestamp  time.Time     `json:"timestamp"`
	Routes     []RouteRecord `json:"routes"`
}

// NewRecord converts a solution and its fitness into the archived form.
func NewRecord(runID string, generation int, fit model.Fitness, sol model.Solution) Record {
	routes := make([]RouteRecord, len(sol.Routes))
	for i, r := range sol.Routes {
		stops := make([]StopRecord, len(r.Stops))
		for j, p := range r.Stops {
			stops[j] = StopRecord{ID: p.ID, X: p.X, Y: p.Y}
		}
		routes[i] = RouteRecord{
			ID:       r.ID,
			Vehicle:  r.Vehicle,
			DepotX:   r.DepotX,
			DepotY:   r.DepotY,
			Distance: r.Distance(),
			Stops:    stops,
		}
	}
	return Record{
		RunID:      runID,
		Generation: generation,
		Violations: fit.Violations,
		Distance:   fit.Distance,
		Timestamp:  time.Now(),
		Routes:     routes,
	}
}

// Query defines filters for retrieving records.
type Query struct {
	RunID   string
	Vehicle string
	Start   time.Time
	End     time.Time
	Limit   int
}

// Matches reports whether the record passes the query filters, the limit
// excepted.
func (q Query) Matches(r Record) bool {
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Vehicle != "" {
		matched := false
		for _, rt := range r.Routes {
			if rt.Vehicle == q.Vehicle {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
