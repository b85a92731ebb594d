// Package shockwave turns explosions into expanding blast radii that chain
// further explosions and award score for equivalent ratios
package shockwave

import (
	"time"

	"github.com/ericre997/RatioRage/vmath"
)

// Shockwave is an ephemeral growing sphere
type Shockwave struct {
	Position    vmath.Vec3F
	StartRadius float64
	MaxRadius   float64
	Duration    time.Duration
	StartTime   time.Time
}

// Radius returns the ease-out-quad radius at now, clamped to [0, MaxRadius]
// alive is false once elapsed exceeds Duration
func (s Shockwave) Radius(now time.Time) (radius float64, alive bool) {
	elapsed := now.Sub(s.StartTime)
	if elapsed > s.Duration {
		return 0, false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	r := vmath.EaseOutQuad(elapsed.Seconds(), s.StartRadius, s.MaxRadius-s.StartRadius, s.Duration.Seconds())
	return vmath.Clamp(r, 0, s.MaxRadius), true
}
