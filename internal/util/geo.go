package util

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// EarthRadiusMeters is the mean Earth radius used for distances
const EarthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance in meters
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	from := s2.LatLngFromDegrees(lat1, lng1)
	to := s2.LatLngFromDegrees(lat2, lng2)

	// LatLng.Distance uses the haversine formula
	return from.Distance(to).Radians() * EarthRadiusMeters
}

// InitialBearing returns the initial great-circle bearing in degrees, in [0, 360)
func InitialBearing(lat1, lng1, lat2, lng2 float64) float64 {
	bearing := geo.Bearing(orb.Point{lng1, lat1}, orb.Point{lng2, lat2})
	return NormalizeDegrees(bearing)
}

// NormalizeDegrees maps any angle onto [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 rounds to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SignedDelta returns the shortest rotation from one angle to another, in [-180, 180)
func SignedDelta(from, to float64) float64 {
	return math.Mod(math.Mod(to-from, 360)+540, 360) - 180
}
