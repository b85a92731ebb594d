package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/vmath"
)

// minRise keeps targets on the limiting line of the arc unreachable despite rounding
const minRise = 1e-9

// ErrTargetUnreachable is returned when no arc at the launch angle reaches the target
var ErrTargetUnreachable = errors.New("target unreachable at launch angle")

// LaunchVelocity solves the initial velocity of a launch at parameter.ThrowAngle
// from from to to under gravity (magnitude, along -Y):
// v² = g·d² / (2·cos²θ·(d·tanθ - h))
// Targets straight above or too high for the arc (d·tanθ - h <= 0) are rejected
func LaunchVelocity(from, to vmath.Vec3F, gravity float64) (vmath.Vec3F, error) {
	return launchAt(from, to, gravity, parameter.ThrowAngle)
}

func launchAt(from, to vmath.Vec3F, gravity, angle float64) (vmath.Vec3F, error) {
	dx := to.X - from.X
	dz := to.Z - from.Z
	d := math.Hypot(dx, dz)
	h := to.Y - from.Y

	sin, cos := math.Sincos(angle)
	rise := d*sin/cos - h
	if d == 0 || cos <= 0 || rise <= minRise || gravity <= 0 {
		return vmath.Vec3F{}, fmt.Errorf("d=%.2f h=%.2f: %w", d, h, ErrTargetUnreachable)
	}

	speed := math.Sqrt(gravity * d * d / (2 * cos * cos * rise))
	horizontal := speed * cos

	return vmath.Vec3F{
		X: dx / d * horizontal,
		Y: speed * sin,
		Z: dz / d * horizontal,
	}, nil
}
