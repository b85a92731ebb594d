package parameter

import "time"

// Shockwave
const (
	ShockwaveMaxRadius   = 10.0
	ShockwaveStartRadius = 0.0
	ShockwaveDuration    = 700 * time.Millisecond

	// ShockwaveYOffset lifts the wave centre above the exploded object
	ShockwaveYOffset = 1.0
)
