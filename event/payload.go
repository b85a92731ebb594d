package event

import (
	"time"

	"github.com/ericre997/RatioRage/ratio"
	"github.com/ericre997/RatioRage/vmath"
)

// MoveToPayload carries a ground target for EventMoveTo
type MoveToPayload struct {
	Target vmath.Vec3F
}

// ThrowPayload carries the aim point for EventThrow
type ThrowPayload struct {
	Target vmath.Vec3F
}

// ThrowReleasedPayload describes the barrel leaving the hand
type ThrowReleasedPayload struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
}

// ExplosionPayload locates a barrel explosion
type ExplosionPayload struct {
	Position vmath.Vec3F
	Chained  bool // Set off by a shockwave rather than impact
}

// RatioExplodedPayload reports a destroyed ratio and whether it scored
type RatioExplodedPayload struct {
	Position   vmath.Vec3F
	Ratio      ratio.Ratio
	Equivalent bool
}

// ScorePayload reports the new total
type ScorePayload struct {
	Delta int
	Total int
}

// LevelStartPayload announces the level target
type LevelStartPayload struct {
	Target    ratio.Ratio
	Remaining int
}

// LevelCompletePayload reports the finished level
type LevelCompletePayload struct {
	Elapsed time.Duration
	Score   int
}
