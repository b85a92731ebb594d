package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in world units
// Y is elevation; the ground plane is XZ
type Vec3F struct {
	X, Y, Z float64
}

// Common axes
var (
	V3FZero = Vec3F{}
	V3FOne  = Vec3F{1, 1, 1}
	V3FUp   = Vec3F{0, 1, 0}
)

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// V3FMul multiplies component-wise
func V3FMul(a, b Vec3F) Vec3F {
	return Vec3F{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FDistSq returns the squared 3D distance between a and b
func V3FDistSq(a, b Vec3F) float64 {
	return V3FMagSq(V3FSub(a, b))
}

// V3FDistSqXZ returns the squared planar distance, ignoring elevation
func V3FDistSqXZ(a, b Vec3F) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

// V3FFlatten zeroes the elevation component
func V3FFlatten(v Vec3F) Vec3F {
	return Vec3F{X: v.X, Z: v.Z}
}

// V3FLerp interpolates from a to b, t in [0,1]
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FIsFinite reports false if any component is NaN or Inf
func V3FIsFinite(v Vec3F) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
