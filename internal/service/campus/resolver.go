package campus

import (
	"math"
	"sort"

	"campusnav/internal/model"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Contains reports whether p lies inside the ring using the even-odd rule.
//
// Longitude is the "vertical" comparison axis and latitude the "horizontal"
// one; the ray is cast along latitude. The campus table was authored against
// this convention, so registry and query points are treated identically.
// A point exactly on an edge may land on either side.
func Contains(ring orb.Ring, p model.GeoPoint) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		latI, lngI := ring[i][1], ring[i][0]
		latJ, lngJ := ring[j][1], ring[j][0]

		if (lngI > p.Lng) != (lngJ > p.Lng) &&
			p.Lat < (latJ-latI)*(p.Lng-lngI)/(lngJ-lngI)+latI {
			inside = !inside
		}
	}
	return inside
}

// Resolve returns the id of the first registered building containing point
func Resolve(point model.GeoPoint, registry *Registry) (string, bool) {
	for i := range registry.buildings {
		if Contains(registry.buildings[i].Ring, point) {
			return registry.buildings[i].ID, true
		}
	}
	return "", false
}

// buildingSpatial represents a building with its spatial information for R-tree indexing
type buildingSpatial struct {
	index    int // Registration order
	building *model.Building
}

// Bounds implements the rtreego.Spatial interface
func (b *buildingSpatial) Bounds() rtreego.Rect {
	minX, minY := b.building.Bound.Min[0], b.building.Bound.Min[1]
	maxX, maxY := b.building.Bound.Max[0], b.building.Bound.Max[1]

	// rtreego rejects zero-length sides
	rect, _ := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{math.Max(maxX-minX, searchTolerance), math.Max(maxY-minY, searchTolerance)},
	)
	return rect
}

const searchTolerance = 1e-9

// Resolver resolves points against a registry using an R-tree bounding box
// prefilter. Results are identical to Resolve.
type Resolver struct {
	registry     *Registry
	spatialIndex *rtreego.Rtree
}

// NewResolver builds the spatial index for the registry
func NewResolver(registry *Registry) *Resolver {
	tree := rtreego.NewTree(2, 2, 8)
	for i := range registry.buildings {
		tree.Insert(&buildingSpatial{index: i, building: &registry.buildings[i]})
	}
	return &Resolver{registry: registry, spatialIndex: tree}
}

// Registry returns the underlying registry
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Locate returns the first registered building containing point
func (r *Resolver) Locate(point model.GeoPoint) (model.Building, bool) {
	candidates := r.spatialIndex.SearchIntersect(rtreego.Point{point.Lng, point.Lat}.ToRect(searchTolerance))
	if len(candidates) == 0 {
		return model.Building{}, false
	}

	// Tree order is arbitrary, registration order decides overlaps
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].(*buildingSpatial).index < candidates[j].(*buildingSpatial).index
	})

	for _, item := range candidates {
		b := item.(*buildingSpatial).building
		if Contains(b.Ring, point) {
			return *b, true
		}
	}
	return model.Building{}, false
}

// Resolve returns the id of the first registered building containing point
func (r *Resolver) Resolve(point model.GeoPoint) (string, bool) {
	b, ok := r.Locate(point)
	return b.ID, ok
}

// InBounds returns the buildings whose bounding box intersects bound, in
// registration order
func (r *Resolver) InBounds(bound orb.Bound) []model.Building {
	searchRect, _ := rtreego.NewRect(
		rtreego.Point{bound.Min.Lon(), bound.Min.Lat()},
		[]float64{math.Max(bound.Max.Lon()-bound.Min.Lon(), searchTolerance), math.Max(bound.Max.Lat()-bound.Min.Lat(), searchTolerance)},
	)

	spatialResults := r.spatialIndex.SearchIntersect(searchRect)
	sort.Slice(spatialResults, func(i, j int) bool {
		return spatialResults[i].(*buildingSpatial).index < spatialResults[j].(*buildingSpatial).index
	})

	result := make([]model.Building, 0, len(spatialResults))
	for _, item := range spatialResults {
		result = append(result, *item.(*buildingSpatial).building)
	}
	return result
}
