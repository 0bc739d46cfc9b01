package models

// TemplateIDPolygon is the free-form template whose vertices are supplied
// directly in geographic coordinates rather than scaled from a base shape.
const TemplateIDPolygon = "polygon"

// ShapeTemplate is a named, normalized polygon definition from the catalog
type ShapeTemplate struct {
	// ID is the template identifier, e.g. "square" or "star"
	ID string `json:"id"`

	// DisplayName is the friendly name shown to players
	DisplayName string `json:"displayName"`

	// BaseVertices are the normalized vertices, components in roughly [-1, 1].
	// Empty for the free-form polygon template.
	BaseVertices []Vertex `json:"baseVertices,omitempty"`

	// Multiplier is the difficulty multiplier applied to scores
	Multiplier float64 `json:"multiplier"`
}
