// Package geo provides planar geometry helpers shared by the routing
// packages. Coordinates are abstract plane units, not geographic degrees.
package geo

import "math"

// Distance returns the Euclidean distance between (x1, y1) and (x2, y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
