package model

import (
	"github.com/paulmach/orb"
)

// Building kinds used by the campus table
const (
	KindBuilding = "building"
	KindLibrary  = "library"
)

// Building represents a named campus region used for tap resolution
type Building struct {
	ID       string    // Building code (E1, F2, ...)
	Name     string    // Display name
	Kind     string    // building, library, ...
	Ring     orb.Ring  // Outline in [lng, lat] order, closure not required
	Centroid GeoPoint  // Label position
	Bound    orb.Bound // Bounding box of the outline
}

// Vertices returns the number of distinct ring vertices
func (b *Building) Vertices() int {
	n := len(b.Ring)
	if n > 1 && b.Ring[0].Equal(b.Ring[n-1]) {
		n--
	}
	return n
}
