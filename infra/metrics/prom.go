package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/evoroute/core/metrics"
)

// PromSink records solver events in Prometheus metrics.
type PromSink struct {
	results        *prometheus.CounterVec
	bestDistance   *prometheus.GaugeVec
	bestViolations *prometheus.GaugeVec
	population     *prometheus.GaugeVec
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_results_total",
		Help: "Total number of recorded generation results",
	}, []string{"run_id", "improved"})
	bestDistance := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "best_solution_distance",
		Help: "Total distance of the current best solution",
	}, []string{"run_id"})
	bestViolations := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "best_solution_violations",
		Help: "Autonomy violations of the current best solution",
	}, []string{"run_id"})
	population := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "population_distance",
		Help: "Distance statistics over the current population",
	}, []string{"run_id", "stat"})

	if err := reg.Register(results); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			results = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(bestDistance); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bestDistance = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(bestViolations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bestViolations = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(population); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			population = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		results:        results,
		bestDistance:   bestDistance,
		bestViolations: bestViolations,
		population:     population,
	}, nil
}

// RecordGeneration increments the result counter for the generation.
func (s *PromSink) RecordGeneration(res coremetrics.GenerationResult) error {
	s.results.WithLabelValues(res.RunID, strconv.FormatBool(res.Improved)).Inc()
	return nil
}

// RecordPopulationStats sets the population distance gauges.
func (s *PromSink) RecordPopulationStats(ev coremetrics.PopulationStats) error {
	s.population.WithLabelValues(ev.RunID, "mean").Set(ev.MeanDistance)
	s.population.WithLabelValues(ev.RunID, "stddev").Set(ev.StdDevDistance)
	s.population.WithLabelValues(ev.RunID, "min").Set(ev.MinDistance)
	s.population.WithLabelValues(ev.RunID, "max").Set(ev.MaxDistance)
	return nil
}

// RecordBestSolution sets the best-solution gauges.
func (s *PromSink) RecordBestSolution(ev coremetrics.BestSolutionEvent) error {
	s.bestDistance.WithLabelValues(ev.RunID).Set(ev.Distance)
	s.bestViolations.WithLabelValues(ev.RunID).Set(float64(ev.Violations))
	return nil
}
