package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParseBBox reads "minLat,minLng,maxLat,maxLng". An empty string returns nil.
func ParseBBox(s string) (*orb.Bound, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox: expected 4 comma separated values, got %d", len(parts))
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox value %d: %w", i+1, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("bbox value %d is not a finite number", i+1)
		}
		v[i] = f
	}
	if math.Abs(v[0]) > 90 || math.Abs(v[2]) > 90 {
		return nil, fmt.Errorf("bbox: latitude must be in [-90, 90]")
	}
	if math.Abs(v[1]) > 180 || math.Abs(v[3]) > 180 {
		return nil, fmt.Errorf("bbox: longitude must be in [-180, 180]")
	}
	if v[0] > v[2] || v[1] > v[3] {
		return nil, fmt.Errorf("bbox: min corner must not exceed max corner")
	}

	return &orb.Bound{
		Min: orb.Point{v[1], v[0]},
		Max: orb.Point{v[3], v[2]},
	}, nil
}
