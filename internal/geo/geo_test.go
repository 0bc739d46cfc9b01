package geo

import (
	"testing"

	"github.com/KirkDiggler/geodraw/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	// 0.008993 degrees of longitude on the equator is about 1000m
	a := models.GeoPoint{Latitude: 0, Longitude: 0}
	b := models.GeoPoint{Latitude: 0, Longitude: 0.008993}

	d := Haversine(a, b)
	assert.InEpsilon(t, 1000.0, d, 0.01)
}

func TestHaversineZeroDistance(t *testing.T) {
	p := models.GeoPoint{Latitude: 45.5, Longitude: -122.6}
	assert.Equal(t, 0.0, Haversine(p, p))
}

func TestHaversineSmallMovement(t *testing.T) {
	// Roughly 0.1m apart, must come out well under the 0.5m jitter floor
	a := models.GeoPoint{Latitude: 10, Longitude: 20}
	b := models.GeoPoint{Latitude: 10.0000009, Longitude: 20}

	d := Haversine(a, b)
	assert.Less(t, d, 0.5)
	assert.Greater(t, d, 0.0)
}

func TestMaterializeUnitVectors(t *testing.T) {
	center := models.GeoPoint{Latitude: 0, Longitude: 0}

	points, err := Materialize([]models.Vertex{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: -1},
	}, center, 111320)
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Radius of one degree-length on the equator maps unit vertices to one degree
	assert.InDelta(t, 0.0, points[0].Latitude, 1e-9)
	assert.InDelta(t, 1.0, points[0].Longitude, 1e-9)
	assert.InDelta(t, 1.0, points[1].Latitude, 1e-9)
	assert.InDelta(t, 0.0, points[1].Longitude, 1e-9)
	assert.InDelta(t, -1.0, points[2].Latitude, 1e-9)
	assert.InDelta(t, -1.0, points[2].Longitude, 1e-9)
}

func TestMaterializeLongitudeStretchesWithLatitude(t *testing.T) {
	center := models.GeoPoint{Latitude: 60, Longitude: 10}

	points, err := Materialize([]models.Vertex{
		{X: 1, Y: 0},
		{X: -1, Y: 0},
		{X: 0, Y: 1},
	}, center, 1000)
	require.NoError(t, err)

	// cos(60 degrees) = 0.5, so the longitude offset is twice the latitude offset
	dLng := points[0].Longitude - center.Longitude
	dLat := points[2].Latitude - center.Latitude
	assert.InEpsilon(t, 2.0, dLng/dLat, 1e-6)
}

func TestMaterializeNearPoleFallsBackToLatDelta(t *testing.T) {
	center := models.GeoPoint{Latitude: 90, Longitude: 0}

	points, err := Materialize([]models.Vertex{
		{X: 1, Y: 0},
		{X: 0, Y: -1},
		{X: -1, Y: 0},
	}, center, 1000)
	require.NoError(t, err)

	// With the cosine guard the longitude delta equals the latitude delta
	assert.InDelta(t, 1000.0/111320.0, points[0].Longitude, 1e-9)
}

func TestMaterializeRejectsBadInput(t *testing.T) {
	center := models.GeoPoint{Latitude: 0, Longitude: 0}
	triangle := []models.Vertex{{X: 0, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}}

	_, err := Materialize(triangle[:2], center, 1000)
	assert.ErrorIs(t, err, ErrTooFewVertices)

	_, err = Materialize(triangle, models.GeoPoint{Latitude: 91, Longitude: 0}, 1000)
	assert.ErrorIs(t, err, ErrInvalidCenter)

	_, err = Materialize(triangle, center, 0)
	assert.ErrorIs(t, err, ErrInvalidRadius)

	_, err = Materialize(triangle, center, -5)
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestPassThrough(t *testing.T) {
	verts := []models.GeoPoint{
		{Latitude: 1, Longitude: 1},
		{Latitude: 1, Longitude: 2},
		{Latitude: 2, Longitude: 2},
	}

	out, err := PassThrough(verts)
	require.NoError(t, err)
	assert.Equal(t, verts, out)

	_, err = PassThrough(verts[:2])
	assert.ErrorIs(t, err, ErrTooFewVertices)

	bad := append([]models.GeoPoint{}, verts...)
	bad[1].Longitude = 200
	_, err = PassThrough(bad)
	assert.ErrorIs(t, err, ErrInvalidVertex)
}

func TestCentroid(t *testing.T) {
	c, err := Centroid([]models.GeoPoint{
		{Latitude: 0, Longitude: 0},
		{Latitude: 2, Longitude: 0},
		{Latitude: 2, Longitude: 4},
		{Latitude: 0, Longitude: 4},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.Latitude, 1e-9)
	assert.InDelta(t, 2.0, c.Longitude, 1e-9)

	_, err = Centroid(nil)
	assert.ErrorIs(t, err, ErrTooFewVertices)
}
