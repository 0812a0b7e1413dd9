package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/evoroute/core/events"
	coremetrics "github.com/kilianp07/evoroute/core/metrics"
	"github.com/kilianp07/evoroute/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.GenerationEvent:
					if r, ok := sink.(coremetrics.PopulationStatsRecorder); ok {
						_ = r.RecordPopulationStats(coremetrics.PopulationStats{
							RunID:          e.RunID,
							Generation:     e.Generation,
							MeanDistance:   e.MeanDistance,
							StdDevDistance: e.StdDevDistance,
							MinDistance:    e.MinDistance,
							MaxDistance:    e.MaxDistance,
							Time:           time.Now(),
						})
					}
				case events.BestEvent:
					if r, ok := sink.(coremetrics.BestSolutionRecorder); ok {
						_ = r.RecordBestSolution(coremetrics.BestSolutionEvent{
							RunID:      e.RunID,
							Generation: e.Generation,
							Violations: e.Fitness.Violations,
							Distance:   e.Fitness.Distance,
							Solution:   e.Solution,
							Time:       time.Now(),
						})
					}
				}
			}
		}
	}()
}
