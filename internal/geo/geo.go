package geo

import (
	"errors"
	"math"

	"github.com/KirkDiggler/geodraw/internal/models"
)

const (
	// earthRadiusMeters is the mean Earth radius used for haversine
	earthRadiusMeters = 6371000.0

	// metersPerDegreeLat is the length of one degree of latitude
	metersPerDegreeLat = 111320.0

	// minCosLat guards the longitude scaling against blow-up near the poles
	minCosLat = 1e-6
)

// Errors returned by the materializer
var (
	ErrTooFewVertices = errors.New("shape needs at least 3 vertices")
	ErrInvalidCenter  = errors.New("center coordinates are invalid")
	ErrInvalidRadius  = errors.New("radius must be a positive number of meters")
	ErrInvalidVertex  = errors.New("vertex coordinates are invalid")
)

// Haversine returns the great-circle distance in meters between two points
func Haversine(a, b models.GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// validPoint rejects non-finite or out-of-range coordinates
func validPoint(p models.GeoPoint) bool {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) {
		return false
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// ValidLocation reports whether lat/lng form a usable coordinate pair
func ValidLocation(lat, lng float64) bool {
	return validPoint(models.GeoPoint{Latitude: lat, Longitude: lng})
}

// Materialize scales a template's normalized vertices around a geographic
// center. The radius is converted to a latitude delta of radius/111320
// degrees and a longitude delta of radius/(111320*cos(lat)); when the
// cosine term degenerates (near the poles) the latitude delta is reused so
// the longitude scaling never divides by zero.
func Materialize(vertices []models.Vertex, center models.GeoPoint, radiusMeters float64) ([]models.GeoPoint, error) {
	if len(vertices) < 3 {
		return nil, ErrTooFewVertices
	}
	if !validPoint(center) {
		return nil, ErrInvalidCenter
	}
	if math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) || radiusMeters <= 0 {
		return nil, ErrInvalidRadius
	}

	dLat := radiusMeters / metersPerDegreeLat

	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	dLng := dLat
	if cosLat > minCosLat {
		dLng = radiusMeters / (metersPerDegreeLat * cosLat)
	}

	points := make([]models.GeoPoint, 0, len(vertices))
	for _, v := range vertices {
		if math.IsNaN(v.X) || math.IsInf(v.X, 0) || math.IsNaN(v.Y) || math.IsInf(v.Y, 0) {
			return nil, ErrInvalidVertex
		}
		points = append(points, models.GeoPoint{
			Latitude:  center.Latitude + v.Y*dLat,
			Longitude: center.Longitude + v.X*dLng,
		})
	}

	return points, nil
}

// PassThrough validates free-form polygon vertices supplied directly in
// geographic coordinates and returns them unchanged.
func PassThrough(vertices []models.GeoPoint) ([]models.GeoPoint, error) {
	if len(vertices) < 3 {
		return nil, ErrTooFewVertices
	}
	for _, p := range vertices {
		if !validPoint(p) {
			return nil, ErrInvalidVertex
		}
	}
	return vertices, nil
}

// Centroid returns the arithmetic mean of the vertices. This is the
// center fallback for free-form polygons, not an area-weighted centroid.
func Centroid(vertices []models.GeoPoint) (models.GeoPoint, error) {
	if len(vertices) == 0 {
		return models.GeoPoint{}, ErrTooFewVertices
	}
	var lat, lng float64
	for _, p := range vertices {
		lat += p.Latitude
		lng += p.Longitude
	}
	n := float64(len(vertices))
	return models.GeoPoint{Latitude: lat / n, Longitude: lng / n}, nil
}
