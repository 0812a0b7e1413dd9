package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	solverGenerations    prometheus.Counter
	solverImprovements   prometheus.Counter
	solverBestDistance   prometheus.Gauge
	solverBestViolations prometheus.Gauge
	solverStepDuration   prometheus.Histogram
	archiveWriteSuccess  prometheus.Counter
	archiveWriteFailure  prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, prometheus.Counter, prometheus.Gauge, prometheus.Gauge, prometheus.Histogram, prometheus.Counter, prometheus.Counter) {
	gens := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "solver_generations_total",
			Help: "Number of evolutionary generations completed",
		},
	)
	impr := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "solver_best_improvements_total",
			Help: "Number of generations that produced a new best solution",
		},
	)
	dist := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solver_best_distance",
			Help: "Total distance of the best solution found so far",
		},
	)
	viol := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solver_best_violations",
			Help: "Number of autonomy violations in the best solution",
		},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "solver_step_duration_seconds",
			Help:    "Duration of one evolutionary step",
			Buckets: prometheus.DefBuckets,
		},
	)
	suc := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_write_success_total",
			Help: "Number of successful archive append operations",
		},
	)
	fail := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_write_failure_total",
			Help: "Number of failed archive append operations",
		},
	)
	return gens, impr, dist, viol, dur, suc, fail
}

func init() {
	solverGenerations, solverImprovements, solverBestDistance, solverBestViolations, solverStepDuration, archiveWriteSuccess, archiveWriteFailure = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers solver metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(solverGenerations, solverImprovements, solverBestDistance, solverBestViolations, solverStepDuration, archiveWriteSuccess, archiveWriteFailure)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	solverGenerations, solverImprovements, solverBestDistance, solverBestViolations, solverStepDuration, archiveWriteSuccess, archiveWriteFailure = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
