package main

import (
	"fmt"
	"io"
	"runtime"

	"campusnav/internal/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/qedus/osmpbf"
	"go.uber.org/zap"
)

// Stats counts what the collector saw
type Stats struct {
	Nodes        int
	Ways         int
	Buildings    int
	Libraries    int
	Unnamed      int
	Open         int
	MissingNodes int
	OutOfBounds  int
	Duplicates   int
}

// Collector turns OSM building outlines into campus registry features.
// Nodes must be added before the ways that reference them, which is the
// order of a standard .osm.pbf file.
type Collector struct {
	bound *orb.Bound

	nodes     map[int64]orb.Point
	seen      map[string]bool
	buildings []*geojson.Feature
	libraries []*geojson.Feature
	stats     Stats
}

// NewCollector creates a collector, keeping only outlines that intersect
// bound when it is non-nil
func NewCollector(bound *orb.Bound) *Collector {
	return &Collector{
		bound: bound,
		nodes: make(map[int64]orb.Point),
		seen:  make(map[string]bool),
	}
}

// AddNode caches a node position
func (c *Collector) AddNode(id int64, lat, lon float64) {
	c.nodes[id] = orb.Point{lon, lat}
	c.stats.Nodes++
}

// kindOf classifies a way by its tags
func kindOf(tags map[string]string) (string, bool) {
	if tags["amenity"] == "library" {
		return model.KindLibrary, true
	}
	if b, ok := tags["building"]; ok && b != "no" {
		return model.KindBuilding, true
	}
	return "", false
}

// AddWay keeps the way when it is a closed, identifiable building or library
func (c *Collector) AddWay(id int64, tags map[string]string, nodeIDs []int64) {
	c.stats.Ways++

	kind, ok := kindOf(tags)
	if !ok {
		return
	}

	ref, name := tags["ref"], tags["name"]
	key := ref
	if key == "" {
		key = name
	}
	if key == "" {
		c.stats.Unnamed++
		return
	}
	if name == "" {
		name = ref
	}

	if len(nodeIDs) < 4 || nodeIDs[0] != nodeIDs[len(nodeIDs)-1] {
		c.stats.Open++
		return
	}

	ring := make(orb.Ring, 0, len(nodeIDs))
	for _, nid := range nodeIDs {
		p, ok := c.nodes[nid]
		if !ok {
			c.stats.MissingNodes++
			return
		}
		ring = append(ring, p)
	}

	if c.bound != nil && !c.bound.Intersects(ring.Bound()) {
		c.stats.OutOfBounds++
		return
	}

	if c.seen[key] {
		c.stats.Duplicates++
		return
	}
	c.seen[key] = true

	centre, _ := planar.CentroidArea(orb.Polygon{ring})

	f := geojson.NewFeature(orb.Polygon{ring})
	f.ID = id
	f.Properties["id"] = key
	f.Properties["name"] = name
	f.Properties["kind"] = kind
	f.Properties["centroid_lat"] = centre.Lat()
	f.Properties["centroid_lng"] = centre.Lon()

	if kind == model.KindLibrary {
		c.libraries = append(c.libraries, f)
		c.stats.Libraries++
	} else {
		c.buildings = append(c.buildings, f)
		c.stats.Buildings++
	}
}

// FeatureCollection returns buildings first and libraries after, each in
// input order. This is the registration order of the campus registry.
func (c *Collector) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, c.buildings...)
	fc.Features = append(fc.Features, c.libraries...)
	return fc
}

// Stats returns the counters so far
func (c *Collector) Stats() Stats {
	return c.stats
}

// Extract decodes an .osm.pbf stream into the collector
func Extract(r io.Reader, c *Collector, logger *zap.Logger) error {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	numProcs := runtime.GOMAXPROCS(-1)
	if err := decoder.Start(numProcs); err != nil {
		return fmt.Errorf("failed to start decoder: %w", err)
	}
	logger.Info("decoder started", zap.Int("procs", numProcs))

	for {
		object, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding: %w", err)
		}

		switch v := object.(type) {
		case *osmpbf.Node:
			c.AddNode(v.ID, v.Lat, v.Lon)
		case *osmpbf.Way:
			c.AddWay(v.ID, v.Tags, v.NodeIDs)
		}
	}
	return nil
}
