package main

import (
	"bytes"
	"testing"

	"campusnav/internal/model"
	"campusnav/internal/service/campus"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addSquare adds four corner nodes starting at id and returns the closed way
func addSquare(c *Collector, id int64, lat, lng, size float64) []int64 {
	c.AddNode(id, lat, lng)
	c.AddNode(id+1, lat, lng+size)
	c.AddNode(id+2, lat+size, lng+size)
	c.AddNode(id+3, lat+size, lng)
	return []int64{id, id + 1, id + 2, id + 3, id}
}

func TestCollector_Filters(t *testing.T) {
	c := NewCollector(nil)

	lib := addSquare(c, 100, 40.7722, 14.7885, 0.0005)
	c.AddWay(1, map[string]string{"amenity": "library", "building": "yes", "name": "BIBLIOTECA_SCIENTIFICA"}, lib)

	e1 := addSquare(c, 200, 40.7730, 14.7890, 0.0004)
	c.AddWay(2, map[string]string{"building": "university", "ref": "E1", "name": "Edificio E1"}, e1)

	c.AddWay(3, map[string]string{"building": "yes"}, e1)
	c.AddWay(4, map[string]string{"building": "yes", "ref": "OPEN"}, e1[:4])
	c.AddWay(5, map[string]string{"building": "yes", "ref": "GHOST"}, []int64{900, 901, 902, 900})
	c.AddWay(6, map[string]string{"building": "no", "ref": "NOT"}, e1)
	c.AddWay(7, map[string]string{"highway": "footway", "name": "path"}, e1)
	c.AddWay(8, map[string]string{"building": "yes", "ref": "E1"}, e1)

	s := c.Stats()
	assert.Equal(t, 1, s.Buildings)
	assert.Equal(t, 1, s.Libraries)
	assert.Equal(t, 1, s.Unnamed)
	assert.Equal(t, 1, s.Open)
	assert.Equal(t, 1, s.MissingNodes)
	assert.Equal(t, 1, s.Duplicates)
	assert.Equal(t, 8, s.Ways)

	fc := c.FeatureCollection()
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "E1", fc.Features[0].Properties["id"], "buildings come before libraries")
	assert.Equal(t, "Edificio E1", fc.Features[0].Properties["name"])
	assert.Equal(t, model.KindLibrary, fc.Features[1].Properties["kind"])
	assert.Equal(t, "BIBLIOTECA_SCIENTIFICA", fc.Features[1].Properties["id"])
	assert.InDelta(t, 40.77245, fc.Features[1].Properties["centroid_lat"], 1e-9)
	assert.InDelta(t, 14.78875, fc.Features[1].Properties["centroid_lng"], 1e-9)
}

func TestCollector_Bound(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{14.78, 40.77}, Max: orb.Point{14.80, 40.78}}
	c := NewCollector(&bound)

	in := addSquare(c, 100, 40.7722, 14.7885, 0.0005)
	c.AddWay(1, map[string]string{"building": "yes", "ref": "IN"}, in)
	out := addSquare(c, 200, 41.0, 15.0, 0.0005)
	c.AddWay(2, map[string]string{"building": "yes", "ref": "OUT"}, out)

	assert.Equal(t, 1, c.Stats().OutOfBounds)
	require.Len(t, c.FeatureCollection().Features, 1)
}

func TestCollector_OutputLoadsIntoRegistry(t *testing.T) {
	c := NewCollector(nil)
	lib := addSquare(c, 100, 40.7722, 14.7885, 0.0005)
	c.AddWay(1, map[string]string{"amenity": "library", "name": "LIB"}, lib)
	bld := addSquare(c, 200, 40.7720, 14.7880, 0.0015)
	c.AddWay(2, map[string]string{"building": "yes", "ref": "BIG"}, bld)

	data, err := c.FeatureCollection().MarshalJSON()
	require.NoError(t, err)

	reg, err := campus.LoadRegistry(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	// The library sits inside BIG, which is registered first
	id, ok := campus.Resolve(model.GeoPoint{Lat: 40.77245, Lng: 14.78875}, reg)
	assert.True(t, ok)
	assert.Equal(t, "BIG", id)

	b, err := reg.Get("LIB")
	require.NoError(t, err)
	assert.Equal(t, model.KindLibrary, b.Kind)
}
