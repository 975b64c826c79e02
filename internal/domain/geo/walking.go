// Package geo converts building coordinates into walking estimates.
package geo

import "math"

// EarthRadiusMeters is the Earth radius used by the campus walking estimate.
const EarthRadiusMeters = 6_367_000.0

// WalkSpeedMetersPerSec is the assumed walking speed, tuned down so that
// straight-line distance approximates a grid path between buildings.
const WalkSpeedMetersPerSec = 1.1

// Haversine returns the great-circle distance in meters between two points
// given as longitude/latitude in degrees.
func Haversine(lon1, lat1, lon2, lat2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Clamp: rounding can push a slightly above 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusMeters * c
}

// WalkingMinutes returns the estimated walking time in minutes between two points.
// It is registered as the walking_time SQL scalar, so its argument order matches
// walking_time(lon1, lat1, lon2, lat2).
func WalkingMinutes(lon1, lat1, lon2, lat2 float64) float64 {
	meters := Haversine(lon1, lat1, lon2, lat2)
	return meters / (WalkSpeedMetersPerSec * 60)
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lon, lat float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
