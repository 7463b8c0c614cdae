package campus

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"campusnav/internal/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

//go:embed data/campus.geojson
var defaultCampus []byte

var (
	ErrBuildingNotFound = errors.New("building not found")
	ErrInvalidRing      = errors.New("ring needs at least 3 distinct points")
	ErrMissingID        = errors.New("building id is empty")
	ErrDuplicateID      = errors.New("duplicate building id")
)

// Registry is the ordered, read-only table of campus regions.
// Order is significant: resolution returns the first region that matches.
type Registry struct {
	buildings []model.Building
	byID      map[string]int
}

// NewRegistry validates buildings and builds a registry in the given order
func NewRegistry(buildings []model.Building) (*Registry, error) {
	r := &Registry{
		buildings: make([]model.Building, 0, len(buildings)),
		byID:      make(map[string]int, len(buildings)),
	}

	for _, b := range buildings {
		if b.ID == "" {
			return nil, ErrMissingID
		}
		if _, exists := r.byID[b.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		if b.Vertices() < 3 {
			return nil, fmt.Errorf("building %s: %w", b.ID, ErrInvalidRing)
		}

		b.Ring = append(orb.Ring(nil), b.Ring...)
		b.Bound = b.Ring.Bound()
		if b.Centroid == (model.GeoPoint{}) {
			b.Centroid = centroid(b.Ring)
		}
		if b.Kind == "" {
			b.Kind = model.KindBuilding
		}

		r.byID[b.ID] = len(r.buildings)
		r.buildings = append(r.buildings, b)
	}

	return r, nil
}

// LoadRegistry reads a GeoJSON FeatureCollection of Polygon features.
// Feature order becomes registration order.
func LoadRegistry(rd io.Reader) (*Registry, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read campus table: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse campus table: %w", err)
	}

	buildings := make([]model.Building, 0, len(fc.Features))
	for i, f := range fc.Features {
		ring, err := outerRing(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}

		b := model.Building{
			ID:   f.Properties.MustString("id", ""),
			Name: f.Properties.MustString("name", ""),
			Kind: f.Properties.MustString("kind", model.KindBuilding),
			Ring: ring,
		}
		if _, ok := f.Properties["centroid_lat"]; ok {
			b.Centroid = model.GeoPoint{
				Lat: f.Properties.MustFloat64("centroid_lat", 0),
				Lng: f.Properties.MustFloat64("centroid_lng", 0),
			}
		}
		buildings = append(buildings, b)
	}

	return NewRegistry(buildings)
}

// DefaultRegistry loads the embedded campus table
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(bytes.NewReader(defaultCampus))
}

func outerRing(g orb.Geometry) (orb.Ring, error) {
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) > 0 {
			return geom[0], nil
		}
	case orb.MultiPolygon:
		if len(geom) > 0 && len(geom[0]) > 0 {
			return geom[0][0], nil
		}
	case orb.Ring:
		return geom, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
	return nil, ErrInvalidRing
}

// centroid returns the area centroid of the ring, falling back to the
// vertex average for degenerate rings
func centroid(ring orb.Ring) model.GeoPoint {
	closed := ring
	if !ring.Closed() {
		closed = append(append(orb.Ring(nil), ring...), ring[0])
	}

	c, area := planar.CentroidArea(orb.Polygon{closed})
	if area == 0 {
		var sum orb.Point
		n := len(closed) - 1
		for _, p := range closed[:n] {
			sum[0] += p[0]
			sum[1] += p[1]
		}
		c = orb.Point{sum[0] / float64(n), sum[1] / float64(n)}
	}
	return model.GeoPointFromOrb(c)
}

// Get returns a building by id
func (r *Registry) Get(id string) (model.Building, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Building{}, fmt.Errorf("%w: %s", ErrBuildingNotFound, id)
	}
	return r.buildings[i], nil
}

// All returns the buildings in registration order
func (r *Registry) All() []model.Building {
	return append([]model.Building(nil), r.buildings...)
}

// Len returns the number of registered buildings
func (r *Registry) Len() int {
	return len(r.buildings)
}
