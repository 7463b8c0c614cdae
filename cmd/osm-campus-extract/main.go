package main

import (
	"flag"
	"log"
	"os"

	"campusnav/internal/logger"
	"campusnav/internal/util"

	"go.uber.org/zap"
)

func main() {
	in := flag.String("in", "", "path to the .osm.pbf file")
	out := flag.String("out", "campus.geojson", "output GeoJSON path")
	bbox := flag.String("bbox", "", "optional minLat,minLng,maxLat,maxLng filter")
	flag.Parse()

	if *in == "" {
		log.Fatal("Usage: osm-campus-extract -in <path-to-osm.pbf> [-out campus.geojson] [-bbox minLat,minLng,maxLat,maxLng]")
	}

	logg, err := logger.New("info", "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	bound, err := util.ParseBBox(*bbox)
	if err != nil {
		logg.Fatal("invalid bbox", zap.Error(err))
	}

	f, err := os.Open(*in)
	if err != nil {
		logg.Fatal("failed to open file", zap.Error(err))
	}
	defer f.Close()

	logg.Info("processing file", zap.String("path", *in))
	c := NewCollector(bound)
	if err := Extract(f, c, logg); err != nil {
		logg.Fatal("extraction failed", zap.Error(err))
	}

	data, err := c.FeatureCollection().MarshalJSON()
	if err != nil {
		logg.Fatal("failed to encode geojson", zap.Error(err))
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logg.Fatal("failed to write output", zap.Error(err))
	}

	s := c.Stats()
	logg.Info("processing complete",
		zap.String("out", *out),
		zap.Int("nodes", s.Nodes),
		zap.Int("ways", s.Ways),
		zap.Int("buildings", s.Buildings),
		zap.Int("libraries", s.Libraries),
		zap.Int("unnamed", s.Unnamed),
		zap.Int("open", s.Open),
		zap.Int("missing_nodes", s.MissingNodes),
		zap.Int("out_of_bounds", s.OutOfBounds),
		zap.Int("duplicates", s.Duplicates))
}
