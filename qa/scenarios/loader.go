// Package scenarios runs YAML-defined optimizer scenarios as acceptance
// checks. Each scenario seeds a deterministic run and asserts bounds on the
// final best solution.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/evoroute/core/model"
)

type PointDef struct {
	ID string  `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

func (p PointDef) ToModel() model.Point {
	return model.Point{ID: p.ID, X: p.X, Y: p.Y}
}

// GenerateDef describes a random point set for scenarios without explicit
// points.
type GenerateDef struct {
	Count   int     `yaml:"count"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
}

type DepotDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Expected struct {
	// MaxViolations bounds the violation count of the final best solution.
	MaxViolations int `yaml:"max_violations"`
	// MaxDistance bounds the total distance of the final best solution.
	// Zero disables the check.
	MaxDistance float64 `yaml:"max_distance,omitempty"`
	// MinImprovements is the least number of archived best solutions.
	MinImprovements int `yaml:"min_improvements,omitempty"`
}

type Scenario struct {
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description,omitempty"`
	Seed           int64       `yaml:"seed"`
	Points         []PointDef  `yaml:"points,omitempty"`
	Generate       GenerateDef `yaml:"generate,omitempty"`
	Depot          DepotDef    `yaml:"depot"`
	Vehicles       []string    `yaml:"vehicles"`
	PopulationSize int         `yaml:"population_size"`
	MutationProb   float64     `yaml:"mutation_prob"`
	Autonomy       float64     `yaml:"autonomy"`
	Generations    int         `yaml:"generations"`
	Expected       Expected    `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Points) == 0 && sc.Generate.Count == 0 {
		return nil, fmt.Errorf("scenario %s: points or generate.count required", sc.Name)
	}
	if sc.Generations < 1 {
		return nil, fmt.Errorf("scenario %s: generations must be positive", sc.Name)
	}
	return &sc, nil
}
