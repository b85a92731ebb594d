package core

import (
	"image/color"
	"time"

	"github.com/ericre997/RatioRage/vmath"
)

// Node is a scene-graph capability: hierarchy, visibility, transforms, release
type Node interface {
	Name() string
	Parent() Node
	// SetParent reparents the node keeping its local transform; nil detaches
	SetParent(parent Node)
	Visible() bool
	SetVisible(visible bool)
	Local() vmath.Transform
	SetLocal(t vmath.Transform)
	// World returns the decomposed world transform
	World() vmath.Transform
	Dispose()
	Disposed() bool
}

// Terrain answers height and surface normal queries in world XZ
type Terrain interface {
	HeightAt(x, z float64) float64
	NormalAt(x, z float64) vmath.Vec3F
}

// PlacementMap yields zero-Y positions of painted cells accepted by pred
type PlacementMap interface {
	PositionsMatching(pred func(c color.RGBA) bool) []vmath.Vec3F
}

// Clock is the game time source
type Clock interface {
	Now() time.Time
}
