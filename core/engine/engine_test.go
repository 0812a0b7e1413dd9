package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evoroute/core/archive"
	"github.com/kilianp07/evoroute/core/events"
	"github.com/kilianp07/evoroute/core/metrics"
	"github.com/kilianp07/evoroute/core/model"
	"github.com/kilianp07/evoroute/core/population"
	"github.com/kilianp07/evoroute/infra/logger"
	"github.com/kilianp07/evoroute/internal/eventbus"
)

type memStore struct {
	mu        sync.Mutex
	records   []archive.Record
	appendErr error
}

func (s *memStore) Append(_ context.Context, rec archive.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *memStore) Query(_ context.Context, q archive.Query) ([]archive.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []archive.Record
	for _, rec := range s.records {
		if q.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type captureSink struct {
	mu      sync.Mutex
	results []metrics.GenerationResult
	err     error
}

func (c *captureSink) RecordGeneration(res metrics.GenerationResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.results = append(c.results, res)
	return nil
}

func testPopulation(t *testing.T, seed int64, nPoints, size int) ([]model.Point, []model.Solution) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	points := population.GeneratePoints(rng, nPoints, 800, 600, 10)
	seeder, err := population.NewInitializer([]string{"equipment_1", "equipment_2", "equipment_3"}, 400, 300, rng)
	require.NoError(t, err)
	pop, err := seeder.NewPopulation(points, size)
	require.NoError(t, err)
	return points, pop
}

func singleStopPopulation(size int) []model.Solution {
	pop := make([]model.Solution, size)
	for i := range pop {
		pop[i] = model.Solution{Routes: []model.Route{{
			ID:      "route_1",
			Vehicle: "equipment_1",
			Stops:   []model.Point{{ID: "p1", X: 3, Y: 4}},
		}}}
	}
	return pop
}

func TestNewEngineValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := singleStopPopulation(2)

	_, err := NewEngine(Config{}, nil, rng, nil, nil, nil, logger.NopLogger{})
	assert.Error(t, err)

	_, err = NewEngine(Config{}, pop, nil, nil, nil, nil, logger.NopLogger{})
	assert.Error(t, err)

	_, err = NewEngine(Config{}, pop, rng, nil, nil, nil, nil)
	assert.Error(t, err)

	eng, err := NewEngine(Config{}, pop, rng, nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)
	assert.NotEmpty(t, eng.RunID())
}

func TestSnapshotBeforeFirstStep(t *testing.T) {
	eng, err := NewEngine(Config{}, singleStopPopulation(2), rand.New(rand.NewSource(1)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)

	_, _, ok := eng.Snapshot()
	assert.False(t, ok)
}

func TestStepBestNeverWorsens(t *testing.T) {
	_, pop := testPopulation(t, 42, 12, 20)
	eng, err := NewEngine(Config{Autonomy: 5000, MutationProb: 0.3}, pop, rand.New(rand.NewSource(42)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)

	ctx := context.Background()
	var prev model.Fitness
	for i := 0; i < 30; i++ {
		g, err := eng.Step(ctx)
		require.NoError(t, err)
		assert.Equal(t, i+1, g.Number)
		cur := model.Fitness{Violations: g.Violations, Distance: g.Distance}
		if i > 0 {
			assert.False(t, prev.Less(cur), "generation %d worsened: %s -> %s", g.Number, prev, cur)
		}
		prev = cur
	}
}

func TestStepElitismCarriesBest(t *testing.T) {
	_, pop := testPopulation(t, 7, 9, 10)
	eng, err := NewEngine(Config{Autonomy: 5000, MutationProb: 0.3}, pop, rand.New(rand.NewSource(7)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)

	_, err = eng.Step(context.Background())
	require.NoError(t, err)

	best, _, ok := eng.Snapshot()
	require.True(t, ok)
	assert.True(t, eng.pop[0].Equal(best))
}

func TestStepPreservesPartition(t *testing.T) {
	points, pop := testPopulation(t, 3, 10, 8)
	eng, err := NewEngine(Config{Autonomy: 5000, MutationProb: 0.5}, pop, rand.New(rand.NewSource(3)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := eng.Step(context.Background())
		require.NoError(t, err)
	}
	for i, sol := range eng.pop {
		assert.NoError(t, sol.Validate(points), "solution %d", i)
	}
}

func TestStepArchivesOnlyOnChange(t *testing.T) {
	store := &memStore{}
	bus := eventbus.New()
	sub := bus.Subscribe()
	eng, err := NewEngine(Config{Autonomy: 12, MutationProb: 0.5}, singleStopPopulation(4), rand.New(rand.NewSource(9)), nil, bus, store, logger.NopLogger{})
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		g, err := eng.Step(ctx)
		require.NoError(t, err)
		assert.Equal(t, i == 0, g.Improved, "generation %d", g.Number)
	}

	assert.Equal(t, 1, store.count())
	recs, err := store.Query(ctx, archive.Query{RunID: eng.RunID()})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Generation)
	assert.InDelta(t, 10.0, recs[0].Distance, 1e-9)
	assert.Equal(t, 0, recs[0].Violations)

	var bestEvents, genEvents int
drain:
	for {
		select {
		case ev := <-sub:
			switch ev.(type) {
			case events.BestEvent:
				bestEvents++
			case events.GenerationEvent:
				genEvents++
			}
		default:
			break drain
		}
	}
	assert.Equal(t, 1, bestEvents)
	assert.Equal(t, 5, genEvents)
}

func TestStepArchiveFailureDoesNotAbort(t *testing.T) {
	store := &memStore{appendErr: errors.New("disk full")}
	sink := &captureSink{err: errors.New("sink down")}
	eng, err := NewEngine(Config{Autonomy: 12}, singleStopPopulation(3), rand.New(rand.NewSource(5)), sink, nil, store, logger.NopLogger{})
	require.NoError(t, err)

	g, err := eng.Step(context.Background())
	require.NoError(t, err)
	assert.True(t, g.Improved)
	assert.Equal(t, 0, store.count())
}

func TestStepDeterministicAcrossWorkers(t *testing.T) {
	_, pop := testPopulation(t, 11, 15, 16)
	popCopy := make([]model.Solution, len(pop))
	for i, sol := range pop {
		popCopy[i] = sol.Clone()
	}

	seq, err := NewEngine(Config{Autonomy: 2000, MutationProb: 0.3, Workers: 1}, pop, rand.New(rand.NewSource(13)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)
	par, err := NewEngine(Config{Autonomy: 2000, MutationProb: 0.3, Workers: 4}, popCopy, rand.New(rand.NewSource(13)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := seq.Step(ctx)
		require.NoError(t, err)
		_, err = par.Step(ctx)
		require.NoError(t, err)
	}

	seqHist := seq.History()
	parHist := par.History()
	require.Equal(t, len(seqHist), len(parHist))
	for i := range seqHist {
		assert.Equal(t, seqHist[i].Violations, parHist[i].Violations, "generation %d", i+1)
		assert.Equal(t, seqHist[i].Distance, parHist[i].Distance, "generation %d", i+1)
		assert.Equal(t, seqHist[i].MeanDistance, parHist[i].MeanDistance, "generation %d", i+1)
	}
}

func TestHistoryBounded(t *testing.T) {
	eng, err := NewEngine(Config{Autonomy: 12, HistorySize: 5}, singleStopPopulation(3), rand.New(rand.NewSource(1)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		_, err := eng.Step(context.Background())
		require.NoError(t, err)
	}

	hist := eng.History()
	require.Len(t, hist, 5)
	assert.Equal(t, 4, hist[0].Number)
	assert.Equal(t, 8, hist[4].Number)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	_, pop := testPopulation(t, 21, 8, 6)
	eng, err := NewEngine(Config{Autonomy: 5000, MutationProb: 0.3}, pop, rand.New(rand.NewSource(21)), nil, nil, nil, logger.NopLogger{})
	require.NoError(t, err)

	runner := &Runner{Engine: eng, Interval: time.Millisecond, Logger: logger.NopLogger{}}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	assert.Eventually(t, func() bool { return len(eng.History()) > 0 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}
