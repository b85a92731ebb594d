// Package scene is an in-memory scene graph of named meshes with
// parent/child transforms and visibility
package scene

import (
	"image/color"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/vmath"
)

// Kind classifies meshes for rendering
type Kind uint8

const (
	KindGroup Kind = iota
	KindBarrel
	KindDigit
	KindBar
	KindFragment
	KindTree
	KindPlayer
)

// Mesh is a scene node; implements core.Node
type Mesh struct {
	graph    *Graph
	id       uint64
	name     string
	kind     Kind
	parent   *Mesh
	children []*Mesh
	local    vmath.Transform
	visible  bool
	disposed bool

	Glyph rune
	Color color.RGBA
}

var _ core.Node = (*Mesh)(nil)

func (m *Mesh) ID() uint64   { return m.id }
func (m *Mesh) Name() string { return m.name }
func (m *Mesh) Kind() Kind   { return m.kind }

// Parent returns nil for root-level meshes
func (m *Mesh) Parent() core.Node {
	if m.parent == nil {
		return nil
	}
	return m.parent
}

// SetParent reparents keeping the local transform
// Non-mesh parents are treated as nil
func (m *Mesh) SetParent(parent core.Node) {
	p, _ := parent.(*Mesh)
	if m.parent == p {
		return
	}
	if m.parent != nil {
		m.parent.removeChild(m)
	}
	m.parent = p
	if p != nil {
		p.children = append(p.children, m)
	}
}

func (m *Mesh) removeChild(c *Mesh) {
	for i, ch := range m.children {
		if ch == c {
			m.children = append(m.children[:i], m.children[i+1:]...)
			return
		}
	}
}

// Children returns the direct children
func (m *Mesh) Children() []*Mesh {
	return m.children
}

func (m *Mesh) Visible() bool           { return m.visible }
func (m *Mesh) SetVisible(visible bool) { m.visible = visible }

// EffectivelyVisible is false if the mesh or any ancestor is hidden
func (m *Mesh) EffectivelyVisible() bool {
	for n := m; n != nil; n = n.parent {
		if !n.visible || n.disposed {
			return false
		}
	}
	return true
}

func (m *Mesh) Local() vmath.Transform     { return m.local }
func (m *Mesh) SetLocal(t vmath.Transform) { m.local = t }

// SetPosition moves the mesh in parent space
func (m *Mesh) SetPosition(p vmath.Vec3F) { m.local.Position = p }

// SetRotation sets the local rotation
func (m *Mesh) SetRotation(q vmath.Quat) { m.local.Rotation = q }

// World composes transforms from the root down
func (m *Mesh) World() vmath.Transform {
	if m.parent == nil {
		return m.local
	}
	return vmath.Compose(m.parent.World(), m.local)
}

// Dispose detaches the mesh and its subtree from the graph
func (m *Mesh) Dispose() {
	if m.disposed {
		return
	}
	for len(m.children) > 0 {
		m.children[len(m.children)-1].Dispose()
	}
	if m.parent != nil {
		m.parent.removeChild(m)
		m.parent = nil
	}
	m.disposed = true
	m.visible = false
	m.graph.remove(m)
}

func (m *Mesh) Disposed() bool { return m.disposed }
