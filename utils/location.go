package utils

import (
	"math"
)

// HaversineDistance calculates the distance between two points on Earth using the Haversine formula
// Returns distance in kilometers
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLon := lon2Rad - lon1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// IsLocationValid checks if the provided coordinates are valid
func IsLocationValid(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DefaultSearchRadius returns the default nearby-search radius in kilometers
func DefaultSearchRadius() float64 {
	return 10.0
}

// MaxSearchRadius returns the maximum allowed nearby-search radius in kilometers
func MaxSearchRadius() float64 {
	return 50.0
}

// ValidateSearchRadius checks if the search radius is within acceptable limits
func ValidateSearchRadius(radius float64) bool {
	return radius > 0 && radius <= MaxSearchRadius()
}
