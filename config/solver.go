package config

import (
	"fmt"
	"time"
)

// SolverConfig defines the parameters of an evolutionary run.
type SolverConfig struct {
	// Points is the number of random delivery points generated when
	// PointsFile is empty.
	Points int `json:"points"`
	// PointsFile optionally loads delivery points from a JSON file
	// instead of generating them.
	PointsFile string `json:"points_file"`
	// Width and Height bound the plane points are generated on.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Padding keeps generated points away from the plane edges.
	Padding float64 `json:"padding"`
	// DepotX and DepotY locate the shared depot. When both are zero the
	// depot is placed at the center of the plane.
	DepotX float64 `json:"depot_x"`
	DepotY float64 `json:"depot_y"`
	// Vehicles lists the fleet identifiers, one route per vehicle.
	Vehicles []string `json:"vehicles"`
	// PopulationSize is the number of solutions per generation.
	PopulationSize int `json:"population_size"`
	// MutationProb is the per-route probability of an adjacent swap,
	// defaults to 0.3 when unset.
	MutationProb float64 `json:"mutation_prob"`
	// Autonomy is the maximum closed-tour distance per route.
	Autonomy float64 `json:"autonomy"`
	// Seed fixes the random source. Zero selects a time-based seed.
	Seed int64 `json:"seed"`
	// TickMS is the delay between evolutionary steps in milliseconds.
	TickMS int `json:"tick_ms"`
	// Workers bounds the goroutines used for fitness evaluation.
	Workers int `json:"workers"`
	// HistorySize bounds the retained generation summaries.
	HistorySize int `json:"history_size"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Points == 0 {
		c.Points = 20
	}
	if c.Width == 0 {
		c.Width = 800
	}
	if c.Height == 0 {
		c.Height = 600
	}
	if c.Padding == 0 {
		c.Padding = 10
	}
	if c.DepotX == 0 && c.DepotY == 0 {
		c.DepotX = c.Width / 2
		c.DepotY = c.Height / 2
	}
	if len(c.Vehicles) == 0 {
		c.Vehicles = []string{"equipment_1", "equipment_2", "equipment_3"}
	}
	if c.PopulationSize == 0 {
		c.PopulationSize = 50
	}
	if c.MutationProb == 0 {
		c.MutationProb = 0.3
	}
	if c.Autonomy == 0 {
		c.Autonomy = 1000
	}
	if c.TickMS == 0 {
		c.TickMS = 100
	}
	if c.HistorySize == 0 {
		c.HistorySize = 256
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if c.Points < 1 && c.PointsFile == "" {
		return fmt.Errorf("points must be positive or points_file set")
	}
	if len(c.Vehicles) == 0 {
		return fmt.Errorf("at least one vehicle is required")
	}
	if c.PopulationSize < 1 {
		return fmt.Errorf("population_size must be positive")
	}
	if c.MutationProb < 0 || c.MutationProb > 1 {
		return fmt.Errorf("mutation_prob must be within [0, 1]")
	}
	if c.Autonomy <= 0 {
		return fmt.Errorf("autonomy must be positive")
	}
	if c.Width <= 2*c.Padding || c.Height <= 2*c.Padding {
		return fmt.Errorf("plane too small for padding %v", c.Padding)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

// Tick returns the pause between evolutionary steps.
func (c SolverConfig) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}
