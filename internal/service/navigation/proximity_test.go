package navigation

import (
	"math"
	"testing"

	"campusnav/internal/model"

	"github.com/stretchr/testify/assert"
)

var (
	library = model.GeoPoint{Lat: 40.77245, Lng: 14.78879}
	e1      = model.GeoPoint{Lat: 40.7732, Lng: 14.7893}
)

func TestDistanceMeters(t *testing.T) {
	assert.Zero(t, DistanceMeters(library, library))

	ab := DistanceMeters(library, e1)
	ba := DistanceMeters(e1, library)
	assert.InDelta(t, ab, ba, 1e-9)

	// ~83 m north, ~43 m east
	assert.InDelta(t, 94.0, ab, 2.0)
}

func TestBearingDegrees(t *testing.T) {
	b := BearingDegrees(library, e1)
	assert.GreaterOrEqual(t, b, 0.0)
	assert.Less(t, b, 90.0)

	back := BearingDegrees(e1, library)
	assert.InDelta(t, 180.0, math.Abs(back-b), 0.01)
}

func TestBearingDegrees_LongitudeWrap(t *testing.T) {
	shifted := model.GeoPoint{Lat: e1.Lat, Lng: e1.Lng + 360}
	assert.InDelta(t, BearingDegrees(library, e1), BearingDegrees(library, shifted), 1e-9)

	shiftedFrom := model.GeoPoint{Lat: library.Lat, Lng: library.Lng - 360}
	assert.InDelta(t, BearingDegrees(library, e1), BearingDegrees(shiftedFrom, e1), 1e-9)
}

func TestBearingDegrees_SamePoint(t *testing.T) {
	b := BearingDegrees(library, library)
	assert.False(t, math.IsNaN(b))
	assert.GreaterOrEqual(t, b, 0.0)
	assert.Less(t, b, 360.0)
}

func TestBearingDegrees_Range(t *testing.T) {
	for deg := 0.0; deg < 360; deg += 15 {
		rad := deg * math.Pi / 180
		to := model.GeoPoint{
			Lat: library.Lat + 0.001*math.Cos(rad),
			Lng: library.Lng + 0.001*math.Sin(rad),
		}
		b := BearingDegrees(library, to)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}

func TestHasArrived(t *testing.T) {
	assert.True(t, HasArrived(20, 20))
	assert.True(t, HasArrived(19.99, 20))
	assert.False(t, HasArrived(20.01, 20))
	assert.True(t, HasArrived(0, 0))
}

func TestFixTo(t *testing.T) {
	fix := FixTo(library, e1, 35)
	assert.False(t, fix.Arrived)
	assert.InDelta(t, DistanceMeters(library, e1), fix.DistanceMeters, 1e-9)

	fix = FixTo(library, library, 35)
	assert.True(t, fix.Arrived)
	assert.Zero(t, fix.DistanceMeters)
}

func TestRelativeBearing(t *testing.T) {
	assert.InDelta(t, 0.0, RelativeBearing(90, 90), 1e-9)
	assert.InDelta(t, 20.0, RelativeBearing(10, 350), 1e-9)
	assert.InDelta(t, 340.0, RelativeBearing(350, 10), 1e-9)
}
