package navigation

import (
	"sync"
	"testing"

	"campusnav/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Location(t *testing.T) {
	s := NewSession("s1", "p1")

	_, ok := s.Position()
	assert.False(t, ok)

	assert.True(t, s.OnLocation(library))
	p, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, library, p)
}

func TestSession_Authorization(t *testing.T) {
	s := NewSession("s1", "p1")
	s.OnLocation(library)
	s.OnHeading(90, 5)

	s.OnAuthorizationChange(AuthorizationDenied)

	_, ok := s.Position()
	assert.False(t, ok)
	assert.False(t, s.OnLocation(e1))
	_, accepted := s.OnHeading(90, 5)
	assert.False(t, accepted)

	snap := s.Snapshot()
	assert.Equal(t, AuthorizationDenied, snap.Authorization)
	assert.Nil(t, snap.Position)
	assert.Nil(t, snap.Heading)

	s.OnAuthorizationChange(AuthorizationWhenInUse)
	assert.True(t, s.OnLocation(e1))
}

func TestSession_Heading(t *testing.T) {
	s := NewSession("s1", "p1")

	_, ok := s.OnHeading(90, -1)
	assert.False(t, ok, "negative accuracy is invalid")

	v, ok := s.OnHeading(90, 10)
	assert.True(t, ok)
	assert.Equal(t, 90.0, v)

	snap := s.Snapshot()
	require.NotNil(t, snap.Heading)
	assert.Equal(t, 90.0, *snap.Heading)
}

func TestSession_Concurrent(t *testing.T) {
	s := NewSession("s1", "p1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.OnLocation(model.GeoPoint{Lat: 40.77, Lng: 14.78 + float64(i)*1e-5})
			s.OnHeading(float64(i), 1)
			s.Snapshot()
		}(i)
	}
	wg.Wait()

	_, ok := s.Position()
	assert.True(t, ok)
}

func TestAuthorizationStatus(t *testing.T) {
	assert.True(t, AuthorizationAlways.Valid())
	assert.False(t, AuthorizationStatus("maybe").Valid())
	assert.True(t, AuthorizationUnknown.Allowed())
	assert.False(t, AuthorizationRestricted.Allowed())
}
