package engine

import (
	"context"
	"time"

	"github.com/kilianp07/evoroute/core/logger"
)

const defaultInterval = 100 * time.Millisecond

// Runner drives an Engine at a fixed interval until the context is canceled.
type Runner struct {
	Engine   *Engine
	Interval time.Duration
	Logger   logger.Logger
}

// Run executes engine steps until ctx is canceled. Cancellation is the
// normal way to stop a run and returns nil.
func (r *Runner) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g, err := r.Engine.Step(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if r.Logger != nil {
					r.Logger.Errorf("step failed: %v", err)
				}
				continue
			}
			if r.Logger != nil && g.Improved {
				r.Logger.Infof("generation %d: violations=%d distance=%.2f", g.Number, g.Violations, g.Distance)
			}
		}
	}
}
