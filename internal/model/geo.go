package model

import "github.com/paulmach/orb"

// GeoPoint is a WGS84 coordinate in degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewGeoPoint creates a GeoPoint from latitude and longitude
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: lat, Lng: lng}
}

// GeoPointFromOrb converts an orb point ([lng, lat]) to a GeoPoint
func GeoPointFromOrb(p orb.Point) GeoPoint {
	return GeoPoint{Lat: p.Lat(), Lng: p.Lon()}
}

// Orb returns the point in orb's [lng, lat] order
func (p GeoPoint) Orb() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}
