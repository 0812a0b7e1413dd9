package archive

import (
	"context"
	"testing"
	"time"

	corearchive "github.com/kilianp07/evoroute/core/archive"
)

func testRecord(runID string, gen int, ts time.Time) corearchive.Record {
	return corearchive.Record{
		RunID:      runID,
		Generation: gen,
		Violations: 0,
		Distance:   float64(gen) * 10,
		Timestamp:  ts,
		Routes: []corearchive.RouteRecord{
			{
				ID:       "route_1",
				Vehicle:  "equipment_1",
				Distance: float64(gen) * 10,
				Stops:    []corearchive.StopRecord{{ID: "p1", X: 3, Y: 4}},
			},
		},
	}
}

func TestJSONLStore_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/routes.jsonl"
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	now := time.Now()
	for i := 1; i <= 3; i++ {
		if err := store.Append(context.Background(), testRecord("run-1", i, now.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	out, err := store.Query(context.Background(), corearchive.Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	if out[0].Generation != 1 || out[2].Generation != 3 {
		t.Fatalf("records out of order: %+v", out)
	}
	if out[0].Routes[0].Stops[0].ID != "p1" {
		t.Fatalf("stop lost in round trip: %+v", out[0].Routes[0])
	}
}

func TestJSONLStore_Filters(t *testing.T) {
	path := t.TempDir() + "/routes.jsonl"
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = store.Append(context.Background(), testRecord("run-1", 1, base))
	_ = store.Append(context.Background(), testRecord("run-2", 2, base.Add(time.Hour)))
	_ = store.Append(context.Background(), testRecord("run-1", 3, base.Add(2*time.Hour)))

	out, err := store.Query(context.Background(), corearchive.Query{RunID: "run-1"})
	if err != nil {
		t.Fatalf("query run: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 run-1 records, got %d", len(out))
	}

	out, err = store.Query(context.Background(), corearchive.Query{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(out) != 1 || out[0].Generation != 2 {
		t.Fatalf("expected generation 2 in window, got %+v", out)
	}

	out, err = store.Query(context.Background(), corearchive.Query{Vehicle: "equipment_9"})
	if err != nil {
		t.Fatalf("query vehicle: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no records for unknown vehicle, got %d", len(out))
	}
}

func TestJSONLStore_LimitKeepsMostRecent(t *testing.T) {
	path := t.TempDir() + "/routes.jsonl"
	store, err := NewJSONLStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	now := time.Now()
	for i := 1; i <= 5; i++ {
		_ = store.Append(context.Background(), testRecord("run-1", i, now.Add(time.Duration(i)*time.Second)))
	}
	out, err := store.Query(context.Background(), corearchive.Query{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].Generation != 4 || out[1].Generation != 5 {
		t.Fatalf("expected most recent records, got %+v", out)
	}
}
