package metrics

import (
	"time"

	"github.com/kilianp07/evoroute/core/model"
)

// GenerationResult summarizes one evolutionary step for observability.
type GenerationResult struct {
	RunID      string
	Generation int
	Violations int
	Distance   float64
	Improved   bool
	Elapsed    time.Duration
	Time       time.Time
}

// MetricsSink records generation results. Implementations must be safe for
// use from the engine goroutine only; fan-out happens behind MultiSink.
type MetricsSink interface {
	RecordGeneration(res GenerationResult) error
}

// PopulationStats carries aggregate distance statistics over one generation's
// population.
type PopulationStats struct {
	RunID          string
	Generation     int
	MeanDistance   float64
	StdDevDistance float64
	MinDistance    float64
	MaxDistance    float64
	Time           time.Time
}

// PopulationStatsRecorder is implemented by sinks able to record population
// statistics.
type PopulationStatsRecorder interface {
	RecordPopulationStats(ev PopulationStats) error
}

// BestSolutionEvent captures a new best solution the moment it appears.
type BestSolutionEvent struct {
	RunID      string
	Generation int
	Violations int
	Distance   float64
	Solution   model.Solution
	Time       time.Time
}

// BestSolutionRecorder records best-solution changes.
type BestSolutionRecorder interface {
	RecordBestSolution(ev BestSolutionEvent) error
}

// NopSink implements MetricsSink and every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordGeneration(GenerationResult) error     { return nil }
func (NopSink) RecordPopulationStats(PopulationStats) error { return nil }
func (NopSink) RecordBestSolution(BestSolutionEvent) error  { return nil }
