package vmath

// Transform is a decomposed scale/rotation/position triple
// Composition assumes uniform or axis-aligned scale, which holds for all scene content
type Transform struct {
	Scale    Vec3F
	Rotation Quat
	Position Vec3F
}

// IdentityTransform has unit scale, no rotation, origin position
var IdentityTransform = Transform{Scale: V3FOne, Rotation: QuatIdentity}

// TransformAt returns an identity transform translated to pos
func TransformAt(pos Vec3F) Transform {
	t := IdentityTransform
	t.Position = pos
	return t
}

// Compose returns the world transform of child expressed in parent space
func Compose(parent, child Transform) Transform {
	return Transform{
		Scale:    V3FMul(parent.Scale, child.Scale),
		Rotation: QuatNormalize(QuatMul(parent.Rotation, child.Rotation)),
		Position: V3FAdd(parent.Position, QuatRotate(parent.Rotation, V3FMul(parent.Scale, child.Position))),
	}
}

// Relative returns the local transform that places world under parent
// Inverse of Compose: Compose(parent, Relative(parent, world)) == world
func Relative(parent, world Transform) Transform {
	inv := QuatConjugate(parent.Rotation)
	local := QuatRotate(inv, V3FSub(world.Position, parent.Position))
	return Transform{
		Scale:    safeDiv(world.Scale, parent.Scale),
		Rotation: QuatNormalize(QuatMul(inv, world.Rotation)),
		Position: safeDiv(local, parent.Scale),
	}
}

func safeDiv(a, b Vec3F) Vec3F {
	div := func(x, y float64) float64 {
		if y == 0 {
			return 0
		}
		return x / y
	}
	return Vec3F{div(a.X, b.X), div(a.Y, b.Y), div(a.Z, b.Z)}
}
