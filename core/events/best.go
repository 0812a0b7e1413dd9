package events

import "github.com/kilianp07/evoroute/core/model"

// BestEvent is published when a generation produces a best solution whose
// content differs from the previous best.
type BestEvent struct {
	RunID      string
	Generation int
	Fitness    model.Fitness
	Solution   model.Solution
}
