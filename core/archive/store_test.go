package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evoroute/core/model"
)

func TestNewRecord(t *testing.T) {
	sol := model.Solution{Routes: []model.Route{
		{
			ID:      "route_1",
			Vehicle: "equipment_1",
			DepotX:  0,
			DepotY:  0,
			Stops: []model.Point{
				{ID: "a", X: 3, Y: 0},
				{ID: "b", X: 3, Y: 4},
			},
		},
	}}
	fit := sol.Evaluate(10)

	rec := NewRecord("run-1", 7, fit, sol)

	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, 7, rec.Generation)
	assert.Equal(t, 1, rec.Violations)
	assert.InDelta(t, 12.0, rec.Distance, 1e-9)
	require.Len(t, rec.Routes, 1)
	assert.Equal(t, "equipment_1", rec.Routes[0].Vehicle)
	assert.InDelta(t, 12.0, rec.Routes[0].Distance, 1e-9)
	require.Len(t, rec.Routes[0].Stops, 2)
	assert.Equal(t, "a", rec.Routes[0].Stops[0].ID)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestQueryMatches(t *testing.T) {
	now := time.Now()
	rec := Record{
		RunID:     "run-1",
		Timestamp: now,
		Routes:    []RouteRecord{{Vehicle: "equipment_2"}},
	}

	tests := []struct {
		name string
		q    Query
		want bool
	}{
		{"empty query matches", Query{}, true},
		{"run id match", Query{RunID: "run-1"}, true},
		{"run id mismatch", Query{RunID: "run-2"}, false},
		{"vehicle match", Query{Vehicle: "equipment_2"}, true},
		{"vehicle mismatch", Query{Vehicle: "equipment_9"}, false},
		{"inside window", Query{Start: now.Add(-time.Minute), End: now.Add(time.Minute)}, true},
		{"before window", Query{Start: now.Add(time.Minute)}, false},
		{"after window", Query{End: now.Add(-time.Minute)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Matches(rec))
		})
	}
}
