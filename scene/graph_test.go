package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericre997/RatioRage/vmath"
)

func TestWorldComposesParents(t *testing.T) {
	g := NewGraph()
	root := g.NewGroup("root")
	root.SetLocal(vmath.Transform{
		Scale:    vmath.Vec3F{X: 2, Y: 2, Z: 2},
		Rotation: vmath.QuatFromAxisAngle(vmath.V3FUp, math.Pi/2),
		Position: vmath.Vec3F{X: 10},
	})

	child := g.NewMesh("child", KindDigit, '1', ColorRatio)
	child.SetParent(root)
	child.SetPosition(vmath.Vec3F{X: 1})

	w := child.World()
	// +X rotated 90 degrees about Y points to -Z, scaled by 2
	assert.InDelta(t, 10, w.Position.X, 1e-9)
	assert.InDelta(t, -2, w.Position.Z, 1e-9)
	assert.InDelta(t, 2, w.Scale.X, 1e-9)
}

func TestReparentKeepsLocal(t *testing.T) {
	g := NewGraph()
	a := g.NewGroup("a")
	a.SetPosition(vmath.Vec3F{Y: 5})
	m := g.NewMesh("m", KindBarrel, 'B', ColorBarrel)
	m.SetPosition(vmath.Vec3F{X: 1})

	m.SetParent(a)
	assert.Equal(t, vmath.Vec3F{X: 1, Y: 5}, m.World().Position)
	require.Len(t, a.Children(), 1)

	m.SetParent(nil)
	assert.Nil(t, m.Parent())
	assert.Empty(t, a.Children())
	assert.Equal(t, vmath.Vec3F{X: 1}, m.World().Position)
}

func TestDisposeSubtree(t *testing.T) {
	g := NewGraph()
	root := g.NewGroup("root")
	p := g.Barrel("barrel", 3)
	p.Solid.SetParent(root)
	for _, f := range p.Fragments {
		f.SetParent(p.Solid)
	}
	require.Equal(t, 5, g.Len())

	root.Dispose()
	assert.Equal(t, 0, g.Len())
	assert.True(t, p.Solid.Disposed())
	for _, f := range p.Fragments {
		assert.True(t, f.Disposed())
	}
	// Idempotent at the scene level
	root.Dispose()
}

func TestRangeSkipsHiddenAndGroups(t *testing.T) {
	g := NewGraph()
	root := g.NewGroup("root")
	visible := g.NewMesh("v", KindTree, 'T', ColorTree)
	hiddenChild := g.NewMesh("h", KindDigit, '2', ColorRatio)
	hiddenChild.SetParent(root)
	root.SetVisible(false)

	var seen []string
	g.Range(func(m *Mesh) { seen = append(seen, m.Name()) })
	assert.Equal(t, []string{visible.Name()}, seen)
}

func TestBarScalesWithSize(t *testing.T) {
	g := NewGraph()
	assert.InDelta(t, 4, g.Bar("bar", 3, 2).Solid.Local().Scale.X, 1e-9)
	assert.Equal(t, '7', g.Digit("d", 7, 1).Solid.Glyph)
}

func TestClear(t *testing.T) {
	g := NewGraph()
	g.Tree("t", vmath.Vec3F{X: 1})
	p := g.Barrel("b", 2)
	p.Fragments[0].SetParent(p.Solid)
	g.Clear()
	assert.Equal(t, 0, g.Len())
}
