package scene

import (
	"fmt"
	"image/color"

	"github.com/ericre997/RatioRage/vmath"
)

// Palette
var (
	ColorBarrel   = color.RGBA{R: 176, G: 96, B: 40, A: 255}
	ColorRatio    = color.RGBA{R: 240, G: 220, B: 80, A: 255}
	ColorFragment = color.RGBA{R: 200, G: 120, B: 60, A: 255}
	ColorTree     = color.RGBA{R: 40, G: 150, B: 60, A: 255}
	ColorPlayer   = color.RGBA{R: 90, G: 170, B: 255, A: 255}
)

// Piece is a solid mesh and its pre-split fragments, all unattached
type Piece struct {
	Solid     *Mesh
	Fragments []*Mesh
}

func (g *Graph) piece(name string, kind Kind, glyph rune, c color.RGBA, fragments int) Piece {
	p := Piece{Solid: g.NewMesh(name, kind, glyph, c)}
	for i := 0; i < fragments; i++ {
		f := g.NewMesh(fmt.Sprintf("%s.frag%d", name, i), KindFragment, fragmentGlyphs[i%len(fragmentGlyphs)], ColorFragment)
		p.Fragments = append(p.Fragments, f)
	}
	return p
}

var fragmentGlyphs = []rune{'*', '\'', ',', '.', '`'}

// Barrel builds a barrel piece
func (g *Graph) Barrel(name string, fragments int) Piece {
	return g.piece(name, KindBarrel, 'B', ColorBarrel, fragments)
}

// Digit builds a single 0-9 digit piece
func (g *Graph) Digit(name string, digit, fragments int) Piece {
	return g.piece(name, KindDigit, rune('0'+digit%10), ColorRatio, fragments)
}

// Bar builds the fraction bar; size selects one of the authored widths
func (g *Graph) Bar(name string, size, fragments int) Piece {
	p := g.piece(name, KindBar, '=', ColorRatio, fragments)
	p.Solid.local.Scale = vmath.Vec3F{X: float64(size + 1), Y: 1, Z: 1}
	return p
}

// Tree builds a static tree at pos
func (g *Graph) Tree(name string, pos vmath.Vec3F) *Mesh {
	m := g.NewMesh(name, KindTree, 'T', ColorTree)
	m.SetPosition(pos)
	return m
}
