package vmath

import "math"

// Quat is a unit rotation quaternion
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion
var QuatIdentity = Quat{W: 1}

// QuatFromAxisAngle builds a rotation of radians around axis
// Zero axis returns identity
func QuatFromAxisAngle(axis Vec3F, radians float64) Quat {
	n := V3FNormalize(axis)
	if n == (Vec3F{}) {
		return QuatIdentity
	}
	s, c := math.Sincos(radians / 2)
	return Quat{n.X * s, n.Y * s, n.Z * s, c}
}

// QuatMul returns a*b (b applied first)
func QuatMul(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

func QuatNormalize(q Quat) Quat {
	mag := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if mag == 0 {
		return QuatIdentity
	}
	inv := 1.0 / mag
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

func QuatConjugate(q Quat) Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// QuatRotate rotates v by q
// Uses v' = v + 2w(u×v) + 2u×(u×v), u = q.xyz
func QuatRotate(q Quat, v Vec3F) Vec3F {
	u := Vec3F{q.X, q.Y, q.Z}
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}

// QuatIntegrate advances q by angular velocity w (rad/s) over dt seconds
func QuatIntegrate(q Quat, w Vec3F, dt float64) Quat {
	angle := V3FMag(w) * dt
	if angle == 0 {
		return q
	}
	return QuatNormalize(QuatMul(QuatFromAxisAngle(w, angle), q))
}
