// Package events defines the solver related events emitted on the event bus.
//
// Available event types:
//   - GenerationEvent: one evolutionary step completed
//   - BestEvent: the best solution content changed
package events
