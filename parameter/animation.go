package parameter

import "time"

// Animation blending
const (
	// BlendRate is weight change per second during cross-fades
	BlendRate = 8.0
)

// Authored clip lengths for the character rig
const (
	ClipIdleDuration     = 2400 * time.Millisecond
	ClipIdleLookDuration = 3200 * time.Millisecond
	ClipWalkDuration     = 1000 * time.Millisecond
	ClipRunDuration      = 700 * time.Millisecond
	ClipThrowDuration    = 1600 * time.Millisecond
	ClipPunchDuration    = 1200 * time.Millisecond
	ClipCheerDuration    = 2000 * time.Millisecond
)
