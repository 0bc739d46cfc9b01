package models

// GeoPoint is a geographic coordinate in degrees
type GeoPoint struct {
	// Latitude in degrees, positive north
	Latitude float64 `json:"latitude"`

	// Longitude in degrees, positive east
	Longitude float64 `json:"longitude"`
}

// Vertex is a normalized template vertex with components in roughly [-1, 1]
type Vertex struct {
	// X is the east-west component
	X float64 `json:"x"`

	// Y is the north-south component
	Y float64 `json:"y"`
}
