package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula. Symmetric; identical points yield 0.
func Distance(a, b Coordinate) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLon := deg2rad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*sinLon*sinLon

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
