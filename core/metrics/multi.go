package metrics

// MultiSink fans out recorded events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordGeneration forwards the result to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordGeneration(res GenerationResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordGeneration(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordPopulationStats forwards population statistics when supported by the
// sink.
func (m *MultiSink) RecordPopulationStats(ev PopulationStats) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PopulationStatsRecorder); ok {
			if err := rec.RecordPopulationStats(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordBestSolution forwards best-solution events when supported by the
// sink.
func (m *MultiSink) RecordBestSolution(ev BestSolutionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(BestSolutionRecorder); ok {
			if err := rec.RecordBestSolution(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
