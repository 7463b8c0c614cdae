package navigation

import (
	"sync"
	"time"

	"campusnav/internal/model"
)

// AuthorizationStatus mirrors the device location permission
type AuthorizationStatus string

const (
	AuthorizationUnknown    AuthorizationStatus = "unknown"
	AuthorizationDenied     AuthorizationStatus = "denied"
	AuthorizationRestricted AuthorizationStatus = "restricted"
	AuthorizationWhenInUse  AuthorizationStatus = "when_in_use"
	AuthorizationAlways     AuthorizationStatus = "always"
)

// Valid reports whether s is a known status
func (s AuthorizationStatus) Valid() bool {
	switch s {
	case AuthorizationUnknown, AuthorizationDenied, AuthorizationRestricted,
		AuthorizationWhenInUse, AuthorizationAlways:
		return true
	}
	return false
}

// Allowed reports whether location updates may be used
func (s AuthorizationStatus) Allowed() bool {
	return s != AuthorizationDenied && s != AuthorizationRestricted
}

// Session holds the live location state of one navigation view.
// The owner of the platform location API calls OnLocation, OnHeading and
// OnAuthorizationChange; all methods are safe for concurrent use.
type Session struct {
	ID       string
	PlayerID string

	mu        sync.Mutex
	auth      AuthorizationStatus
	position  *model.GeoPoint
	heading   *HeadingSmoother
	updatedAt time.Time
}

// Snapshot is a copy of the session state
type Snapshot struct {
	ID            string              `json:"id"`
	PlayerID      string              `json:"player_id"`
	Authorization AuthorizationStatus `json:"authorization"`
	Position      *model.GeoPoint     `json:"position,omitempty"`
	Heading       *float64            `json:"heading,omitempty"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewSession creates a session with an empty heading buffer
func NewSession(id, playerID string) *Session {
	return &Session{
		ID:        id,
		PlayerID:  playerID,
		auth:      AuthorizationUnknown,
		heading:   NewHeadingSmoother(DefaultHeadingWindow),
		updatedAt: time.Now(),
	}
}

// OnLocation records a new position. It returns false when location access
// is not authorized.
func (s *Session) OnLocation(p model.GeoPoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.auth.Allowed() {
		return false
	}
	s.position = &p
	s.updatedAt = time.Now()
	return true
}

// OnHeading feeds a raw compass reading. Negative accuracy marks an invalid
// reading, which is ignored. Returns the smoothed heading and whether the
// reading was accepted.
func (s *Session) OnHeading(degrees, accuracy float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if accuracy < 0 || !s.auth.Allowed() {
		return s.heading.Value(), false
	}
	s.updatedAt = time.Now()
	return s.heading.Add(degrees)
}

// OnAuthorizationChange updates the permission. Losing permission drops the
// known position and heading.
func (s *Session) OnAuthorizationChange(status AuthorizationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auth = status
	if !status.Allowed() {
		s.position = nil
		s.heading.Reset()
	}
	s.updatedAt = time.Now()
}

// Position returns the last known position
func (s *Session) Position() (model.GeoPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position == nil {
		return model.GeoPoint{}, false
	}
	return *s.position, true
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.ID,
		PlayerID:      s.PlayerID,
		Authorization: s.auth,
		UpdatedAt:     s.updatedAt,
	}
	if s.position != nil {
		p := *s.position
		snap.Position = &p
	}
	if s.heading.Len() > 0 {
		h := s.heading.Value()
		snap.Heading = &h
	}
	return snap
}
