package mqtt

import (
	"context"

	"github.com/kilianp07/evoroute/core/archive"
	"github.com/kilianp07/evoroute/core/events"
	"github.com/kilianp07/evoroute/core/live"
	"github.com/kilianp07/evoroute/infra/logger"
	"github.com/kilianp07/evoroute/internal/eventbus"
)

// StartBestRelay subscribes to the event bus and forwards best-solution
// events to the live publisher. It stops when the context is canceled.
func StartBestRelay(ctx context.Context, bus eventbus.EventBus, pub live.Publisher, log logger.Logger) {
	if bus == nil || pub == nil {
		return
	}
	if log == nil {
		log = logger.NopLogger{}
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
				e, ok := ev.(events.BestEvent)
				if !ok {
					continue
				}
				rec := archive.NewRecord(e.RunID, e.Generation, e.Fitness, e.Solution)
				if err := pub.PublishBest(ctx, rec); err != nil {
					log.Errorf("live publish failed: %v", err)
				}
			}
		}
	}()
}
