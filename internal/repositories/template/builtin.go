package template

import (
	"math"

	"github.com/KirkDiggler/geodraw/internal/models"
)

const (
	circlePointCount = 32
	starPointCount   = 10
	starInnerRatio   = 0.4
)

// circleVertices approximates a circle with a 32-gon in unit space
func circleVertices() []models.Vertex {
	points := make([]models.Vertex, 0, circlePointCount)
	for i := 0; i < circlePointCount; i++ {
		angle := 2 * math.Pi * float64(i) / circlePointCount
		points = append(points, models.Vertex{
			X: math.Sin(angle),
			Y: math.Cos(angle),
		})
	}
	return points
}

// starVertices builds a 5-pointed star, alternating outer and inner radius
func starVertices() []models.Vertex {
	points := make([]models.Vertex, 0, starPointCount)
	for i := 0; i < starPointCount; i++ {
		r := 1.0
		if i%2 != 0 {
			r = starInnerRatio
		}
		angle := math.Pi/2 + 2*math.Pi*float64(i)/starPointCount
		points = append(points, models.Vertex{
			X: r * math.Sin(angle),
			Y: r * math.Cos(angle),
		})
	}
	return points
}

// BuiltinTemplates returns the stock catalog. Multipliers reflect shape
// difficulty; the free-form polygon carries no base vertices because its
// geometry comes from the caller.
func BuiltinTemplates() []*models.ShapeTemplate {
	return []*models.ShapeTemplate{
		{
			ID:          "square",
			DisplayName: "Square",
			BaseVertices: []models.Vertex{
				{X: -1, Y: 1},
				{X: 1, Y: 1},
				{X: 1, Y: -1},
				{X: -1, Y: -1},
			},
			Multiplier: 1.3,
		},
		{
			ID:          "triangle",
			DisplayName: "Triangle",
			BaseVertices: []models.Vertex{
				{X: 0, Y: 1},
				{X: 1, Y: -1},
				{X: -1, Y: -1},
			},
			Multiplier: 1.15,
		},
		{
			ID:           "circle",
			DisplayName:  "Circle",
			BaseVertices: circleVertices(),
			Multiplier:   1.05,
		},
		{
			ID:           "star",
			DisplayName:  "Star",
			BaseVertices: starVertices(),
			Multiplier:   1.6,
		},
		{
			ID:          models.TemplateIDPolygon,
			DisplayName: "Polygon",
			Multiplier:  1.0,
		},
	}
}
