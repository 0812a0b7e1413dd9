// Package engine drives the evolutionary loop. Each step evaluates the
// population, archives and publishes best-solution changes, then breeds the
// next generation with elitism.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/evoroute/core/archive"
	"github.com/kilianp07/evoroute/core/events"
	"github.com/kilianp07/evoroute/core/genetic"
	"github.com/kilianp07/evoroute/core/logger"
	"github.com/kilianp07/evoroute/core/metrics"
	"github.com/kilianp07/evoroute/core/model"
	"github.com/kilianp07/evoroute/core/monitoring"
	"github.com/kilianp07/evoroute/internal/eventbus"
)

const defaultHistorySize = 256

// Config holds the evolutionary parameters of an Engine.
type Config struct {
	// Autonomy is the maximum closed-tour distance a route may cover
	// before it counts as a violation.
	Autonomy float64
	// MutationProb is the per-route probability of an adjacent swap.
	MutationProb float64
	// Workers bounds the number of goroutines used to evaluate the
	// population. Values below two evaluate sequentially.
	Workers int
	// HistorySize bounds the number of retained generation summaries.
	HistorySize int
}

// Generation summarizes one completed evolutionary step.
type Generation struct {
	RunID          string        `json:"run_id"`
	Number         int           `json:"generation"`
	Violations     int           `json:"violations"`
	Distance       float64       `json:"distance"`
	MeanDistance   float64       `json:"mean_distance"`
	StdDevDistance float64       `json:"stddev_distance"`
	MinDistance    float64       `json:"min_distance"`
	MaxDistance    float64       `json:"max_distance"`
	Improved       bool          `json:"improved"`
	Elapsed        time.Duration `json:"elapsed"`
	Time           time.Time     `json:"time"`
}

// Engine evolves a population of routing solutions.
type Engine struct {
	cfg     Config
	rng     *rand.Rand
	runID   string
	logger  logger.Logger
	metrics metrics.MetricsSink
	bus     eventbus.EventBus
	store   archive.Store

	pop []model.Solution
	gen int

	best    model.Solution
	bestFit model.Fitness
	bestGen int
	hasBest bool
	history []Generation
	mu      sync.Mutex
}

type scored struct {
	sol model.Solution
	fit model.Fitness
}

// NewEngine creates a new engine over an initial population. The sink, bus
// and store may be nil; they are skipped when absent.
func NewEngine(cfg Config, pop []model.Solution, rng *rand.Rand, sink metrics.MetricsSink, bus eventbus.EventBus, store archive.Store, log logger.Logger) (*Engine, error) {
	if len(pop) == 0 || rng == nil || log == nil {
		return nil, fmt.Errorf("engine: nil parameter provided to NewEngine")
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaultHistorySize
	}
	return &Engine{
		cfg:     cfg,
		rng:     rng,
		runID:   uuid.NewString(),
		logger:  log,
		metrics: sink,
		bus:     bus,
		store:   store,
		pop:     pop,
		gen:     1,
	}, nil
}

// RunID returns the identifier attached to every record of this run.
func (e *Engine) RunID() string {
	return e.runID
}

// Step runs one evolutionary generation and returns its summary.
func (e *Engine) Step(ctx context.Context) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}
	start := time.Now()

	ranked := e.evaluate()
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].fit.Less(ranked[j].fit) })

	distances := make([]float64, len(ranked))
	for i, s := range ranked {
		distances[i] = s.fit.Distance
	}
	mean := stat.Mean(distances, nil)
	stddev := 0.0
	if len(distances) > 1 {
		stddev = stat.StdDev(distances, nil)
	}

	leader := ranked[0]
	gen := e.gen
	e.mu.Lock()
	improved := !e.hasBest || !leader.sol.Equal(e.best)
	if improved {
		e.best = leader.sol.Clone()
		e.bestFit = leader.fit
		e.bestGen = gen
		e.hasBest = true
	}
	e.mu.Unlock()

	if improved {
		solverImprovements.Inc()
		e.archiveBest(ctx, gen, leader)
		if e.bus != nil {
			e.bus.Publish(events.BestEvent{
				RunID:      e.runID,
				Generation: gen,
				Fitness:    leader.fit,
				Solution:   leader.sol.Clone(),
			})
		}
	}

	e.pop = e.breed(ranked)
	e.gen = gen + 1

	result := Generation{
		RunID:          e.runID,
		Number:         gen,
		Violations:     leader.fit.Violations,
		Distance:       leader.fit.Distance,
		MeanDistance:   mean,
		StdDevDistance: stddev,
		MinDistance:    floats.Min(distances),
		MaxDistance:    floats.Max(distances),
		Improved:       improved,
		Elapsed:        time.Since(start),
		Time:           time.Now(),
	}

	e.mu.Lock()
	e.history = append(e.history, result)
	if len(e.history) > e.cfg.HistorySize {
		e.history = e.history[len(e.history)-e.cfg.HistorySize:]
	}
	e.mu.Unlock()

	solverGenerations.Inc()
	solverBestDistance.Set(leader.fit.Distance)
	solverBestViolations.Set(float64(leader.fit.Violations))
	solverStepDuration.Observe(result.Elapsed.Seconds())

	e.recordSink(result)
	if e.bus != nil {
		e.bus.Publish(events.GenerationEvent{
			RunID:          result.RunID,
			Generation:     result.Number,
			Violations:     result.Violations,
			Distance:       result.Distance,
			MeanDistance:   result.MeanDistance,
			StdDevDistance: result.StdDevDistance,
			MinDistance:    result.MinDistance,
			MaxDistance:    result.MaxDistance,
			Improved:       result.Improved,
			Elapsed:        result.Elapsed,
		})
	}
	e.logger.Debugf("generation %d best %s", gen, leader.fit)
	return result, nil
}

// evaluate scores every solution of the current population. Results are
// written by index so the ranking is identical whatever the worker count.
func (e *Engine) evaluate() []scored {
	n := len(e.pop)
	out := make([]scored, n)
	workers := e.cfg.Workers
	if workers > n {
		workers = n
	}
	if workers < 2 {
		for i, sol := range e.pop {
			out[i] = scored{sol: sol, fit: sol.Evaluate(e.cfg.Autonomy)}
		}
		return out
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = scored{sol: e.pop[i], fit: e.pop[i].Evaluate(e.cfg.Autonomy)}
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}

// breed builds the next population: the best solution is carried over
// unchanged, the rest come from crossover and mutation of parents drawn
// uniformly with replacement.
func (e *Engine) breed(ranked []scored) []model.Solution {
	next := make([]model.Solution, 0, len(ranked))
	next = append(next, e.best.Clone())
	for len(next) < len(ranked) {
		p1 := ranked[e.rng.Intn(len(ranked))].sol
		p2 := ranked[e.rng.Intn(len(ranked))].sol
		next = append(next, genetic.Reproduce(e.rng, p1, p2, e.cfg.MutationProb))
	}
	return next
}

// archiveBest persists the new best solution. Failures are logged and
// counted but never abort the step.
func (e *Engine) archiveBest(ctx context.Context, gen int, leader scored) {
	if e.store == nil {
		return
	}
	rec := archive.NewRecord(e.runID, gen, leader.fit, leader.sol)
	if err := e.store.Append(ctx, rec); err != nil {
		archiveWriteFailure.Inc()
		e.logger.Errorf("archive append failed: %v", err)
		monitoring.CaptureException(err, map[string]string{"component": "engine"})
		return
	}
	archiveWriteSuccess.Inc()
}

// recordSink forwards the generation summary to the metrics sink if one is
// configured.
func (e *Engine) recordSink(g Generation) {
	if e.metrics == nil {
		return
	}
	res := metrics.GenerationResult{
		RunID:      g.RunID,
		Generation: g.Number,
		Violations: g.Violations,
		Distance:   g.Distance,
		Improved:   g.Improved,
		Elapsed:    g.Elapsed,
		Time:       g.Time,
	}
	if err := e.metrics.RecordGeneration(res); err != nil {
		e.logger.Errorf("metrics error: %v", err)
	}
}

// Snapshot returns a copy of the best solution found so far. The boolean is
// false until the first step completes.
func (e *Engine) Snapshot() (model.Solution, model.Fitness, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasBest {
		return model.Solution{}, model.Fitness{}, false
	}
	return e.best.Clone(), e.bestFit, true
}

// Best returns the current best solution as an archive record. The boolean
// is false until the first step completes.
func (e *Engine) Best() (archive.Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasBest {
		return archive.Record{}, false
	}
	return archive.NewRecord(e.runID, e.bestGen, e.bestFit, e.best), true
}

// History returns a copy of the retained generation summaries, oldest first.
func (e *Engine) History() []Generation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Generation(nil), e.history...)
}

// Close releases resources held by the engine.
func (e *Engine) Close() error {
	if e.bus != nil {
		e.bus.Close()
	}
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}
