package population

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/kilianp07/evoroute/core/model"
)

// GeneratePoints returns n uniformly random points inside the plane, keeping
// a padding margin away from every edge. IDs run point_1..point_n.
func GeneratePoints(rng *rand.Rand, n int, width, height, padding float64) []model.Point {
	pts := make([]model.Point, n)
	for i := range pts {
		pts[i] = model.Point{
			ID: fmt.Sprintf("point_%d", i+1),
			X:  padding + rng.Float64()*(width-2*padding),
			Y:  padding + rng.Float64()*(height-2*padding),
		}
	}
	return pts
}

// ReadPointsFile loads a JSON array of points as written by the points
// subcommand. Runs fed from a file are reproducible across restarts.
func ReadPointsFile(path string) ([]model.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pts []model.Point
	if err := json.Unmarshal(data, &pts); err != nil {
		return nil, fmt.Errorf("parse points file %s: %w", path, err)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("points file %s is empty", path)
	}
	return pts, nil
}
