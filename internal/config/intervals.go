package config

import "time"

// Worker intervals
const (
	// SessionSweepInterval defines how often idle sessions are evicted
	SessionSweepInterval = time.Minute

	// SessionIdleTimeout is how long a navigation or floor-plan session may stay unused
	SessionIdleTimeout = 30 * time.Minute

	// ShutdownTimeout bounds graceful HTTP shutdown
	ShutdownTimeout = 10 * time.Second
)
