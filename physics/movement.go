package physics

import (
	"time"

	"github.com/ericre997/RatioRage/vmath"
)

// MoveToward steps pos toward target in the XZ plane at speed units/s
// Y is left to the caller; arrived is true once target is reached
func MoveToward(pos, target vmath.Vec3F, speed float64, dt time.Duration) (next vmath.Vec3F, arrived bool) {
	delta := vmath.V3FFlatten(vmath.V3FSub(target, pos))
	dist := vmath.V3FMag(delta)
	step := speed * dt.Seconds()

	if dist <= step || dist == 0 {
		return vmath.Vec3F{X: target.X, Y: pos.Y, Z: target.Z}, true
	}
	return vmath.V3FAdd(pos, vmath.V3FScale(delta, step/dist)), false
}
