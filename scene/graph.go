package scene

import (
	"image/color"

	"github.com/ericre997/RatioRage/vmath"
)

// Graph owns every live mesh
// Single-threaded; accessed from the frame loop only
type Graph struct {
	nextID uint64
	meshes map[uint64]*Mesh
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		nextID: 1,
		meshes: make(map[uint64]*Mesh),
	}
}

// NewMesh creates a visible root-level mesh at the origin
func (g *Graph) NewMesh(name string, kind Kind, glyph rune, c color.RGBA) *Mesh {
	m := &Mesh{
		graph:   g,
		id:      g.nextID,
		name:    name,
		kind:    kind,
		local:   vmath.IdentityTransform,
		visible: true,
		Glyph:   glyph,
		Color:   c,
	}
	g.nextID++
	g.meshes[m.id] = m
	return m
}

// NewGroup creates an invisible-by-shape transform node
func (g *Graph) NewGroup(name string) *Mesh {
	return g.NewMesh(name, KindGroup, 0, color.RGBA{})
}

func (g *Graph) remove(m *Mesh) {
	delete(g.meshes, m.id)
}

// Len returns the number of live meshes
func (g *Graph) Len() int {
	return len(g.meshes)
}

// Get returns a live mesh by id
func (g *Graph) Get(id uint64) (*Mesh, bool) {
	m, ok := g.meshes[id]
	return m, ok
}

// Range calls fn for every live, effectively visible, drawable mesh
func (g *Graph) Range(fn func(m *Mesh)) {
	for _, m := range g.meshes {
		if m.kind == KindGroup || !m.EffectivelyVisible() {
			continue
		}
		fn(m)
	}
}

// Clear disposes every mesh
func (g *Graph) Clear() {
	for _, m := range g.meshes {
		if m.parent == nil {
			m.Dispose()
		}
	}
	// Orphans whose parent was already removed
	for _, m := range g.meshes {
		m.disposed = true
		delete(g.meshes, m.id)
	}
}
