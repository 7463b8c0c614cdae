package navigation

import (
	"campusnav/internal/model"
	"campusnav/internal/util"
)

// DistanceMeters returns the great-circle distance between two points
func DistanceMeters(from, to model.GeoPoint) float64 {
	return util.HaversineDistance(from.Lat, from.Lng, to.Lat, to.Lng)
}

// BearingDegrees returns the initial bearing from one point to another in [0, 360).
// The bearing between identical points is 0.
func BearingDegrees(from, to model.GeoPoint) float64 {
	return util.InitialBearing(from.Lat, from.Lng, to.Lat, to.Lng)
}

// HasArrived reports whether distance is within radius, boundary inclusive
func HasArrived(distance, radius float64) bool {
	return distance <= radius
}

// Fix is the distance and bearing from a position to a target
type Fix struct {
	DistanceMeters float64 `json:"distance_meters"`
	BearingDegrees float64 `json:"bearing_degrees"`
	Arrived        bool    `json:"arrived"`
}

// FixTo computes distance, bearing and arrival for a target with a radius
func FixTo(from, to model.GeoPoint, radius float64) Fix {
	d := DistanceMeters(from, to)
	return Fix{
		DistanceMeters: d,
		BearingDegrees: BearingDegrees(from, to),
		Arrived:        HasArrived(d, radius),
	}
}

// RelativeBearing returns where the target lies relative to the device heading,
// in [0, 360). 0 means straight ahead.
func RelativeBearing(bearing, heading float64) float64 {
	return util.NormalizeDegrees(bearing - heading)
}
