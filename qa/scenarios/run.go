package scenarios

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	corearchive "github.com/kilianp07/evoroute/core/archive"
	"github.com/kilianp07/evoroute/core/engine"
	coremetrics "github.com/kilianp07/evoroute/core/metrics"
	"github.com/kilianp07/evoroute/core/model"
	"github.com/kilianp07/evoroute/core/population"
	infraarchive "github.com/kilianp07/evoroute/infra/archive"
	"github.com/kilianp07/evoroute/infra/logger"
	"github.com/kilianp07/evoroute/infra/metrics"
	"github.com/kilianp07/evoroute/infra/mqtt"
	"github.com/kilianp07/evoroute/internal/eventbus"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	rng := rand.New(rand.NewSource(sc.Seed))
	var points []model.Point
	if len(sc.Points) > 0 {
		points = make([]model.Point, len(sc.Points))
		for i, p := range sc.Points {
			points[i] = p.ToModel()
		}
	} else {
		points = population.GeneratePoints(rng, sc.Generate.Count, sc.Generate.Width, sc.Generate.Height, sc.Generate.Padding)
	}

	seeder, err := population.NewInitializer(sc.Vehicles, sc.Depot.X, sc.Depot.Y, rng)
	if err != nil {
		t.Fatalf("initializer: %v", err)
	}
	pop, err := seeder.NewPopulation(points, sc.PopulationSize)
	if err != nil {
		t.Fatalf("population: %v", err)
	}

	store, err := infraarchive.NewJSONLStore(t.TempDir() + "/routes.jsonl")
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	bus := eventbus.New()
	eng, err := engine.NewEngine(engine.Config{
		Autonomy:     sc.Autonomy,
		MutationProb: sc.MutationProb,
	}, pop, rng, sink, bus, store, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	ctx := context.Background()
	pub := mqtt.NewMockPublisher()
	mqtt.StartBestRelay(ctx, bus, pub, logger.NopLogger{})

	var prev engine.Generation
	for i := 0; i < sc.Generations; i++ {
		g, err := eng.Step(ctx)
		if err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
		if i > 0 && worse(g, prev) {
			t.Fatalf("scenario %s: best worsened at generation %d: %+v after %+v", sc.Name, g.Number, g, prev)
		}
		prev = g
	}

	sol, fit, ok := eng.Snapshot()
	if !ok {
		t.Fatalf("scenario %s: no best after %d generations", sc.Name, sc.Generations)
	}
	if err := sol.Validate(points); err != nil {
		t.Errorf("scenario %s: invalid best solution: %v", sc.Name, err)
	}
	if fit.Violations > sc.Expected.MaxViolations {
		t.Errorf("scenario %s: expected at most %d violations, got %d", sc.Name, sc.Expected.MaxViolations, fit.Violations)
	}
	if sc.Expected.MaxDistance > 0 && fit.Distance > sc.Expected.MaxDistance {
		t.Errorf("scenario %s: expected distance below %.2f, got %.2f", sc.Name, sc.Expected.MaxDistance, fit.Distance)
	}

	recs, err := store.Query(ctx, corearchive.Query{RunID: eng.RunID()})
	if err != nil {
		t.Fatalf("archive query: %v", err)
	}
	if len(recs) < sc.Expected.MinImprovements {
		t.Errorf("scenario %s: expected at least %d archived improvements, got %d", sc.Name, sc.Expected.MinImprovements, len(recs))
	}

	// the relay delivers asynchronously
	deadline := time.Now().Add(2 * time.Second)
	for len(pub.Published()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	published := pub.Published()
	if len(published) == 0 {
		t.Errorf("scenario %s: no best solution published", sc.Name)
	} else if published[0].RunID != eng.RunID() {
		t.Errorf("scenario %s: published run %s, want %s", sc.Name, published[0].RunID, eng.RunID())
	}

	if err := eng.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

// worse reports whether the best fitness regressed between two generations.
func worse(cur, prev engine.Generation) bool {
	if cur.Violations != prev.Violations {
		return cur.Violations > prev.Violations
	}
	return cur.Distance > prev.Distance
}
