package model

// Point is a delivery stop on the plane. Identity is carried by ID; two
// points with the same ID refer to the same stop regardless of instance.
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}
