package events

import "time"

// GenerationEvent is published after every evolutionary step.
type GenerationEvent struct {
	RunID          string
	Generation     int
	Violations     int
	Distance       float64
	MeanDistance   float64
	StdDevDistance float64
	MinDistance    float64
	MaxDistance    float64
	Improved       bool
	Elapsed        time.Duration
}
