package terrain

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math/rand/v2"

	"github.com/ericre997/RatioRage/vmath"
)

// Surface paint channels: red floor, green rock, blue grass
var (
	PaintFloor = color.RGBA{R: 255, A: 255}
	PaintRock  = color.RGBA{G: 255, A: 255}
	PaintGrass = color.RGBA{B: 200, A: 255}
	// PaintTree is pure full-intensity blue, reserved for tree cells
	PaintTree = color.RGBA{B: 255, A: 255}
)

// IsTreeCell reports whether c marks a tree site
func IsTreeCell(c color.RGBA) bool {
	return c.B == 255 && c.R == 0 && c.G == 0
}

// AnyCell accepts every cell
func AnyCell(color.RGBA) bool { return true }

// ColorMap stores one paint color per terrain cell, row-major from the +Z edge
type ColorMap struct {
	subX, subZ   int
	width, depth float64
	cells        []color.RGBA
}

// NewColorMap creates an unpainted map of subX by subZ cells
func NewColorMap(subX, subZ int, width, depth float64) (*ColorMap, error) {
	if subX <= 0 || subZ <= 0 || width <= 0 || depth <= 0 {
		return nil, ErrInvalidSize
	}
	return &ColorMap{
		subX:  subX,
		subZ:  subZ,
		width: width,
		depth: depth,
		cells: make([]color.RGBA, subX*subZ),
	}, nil
}

// ColorMapFromImage samples the upper-left pixel of each cell
func ColorMapFromImage(subX, subZ int, width, depth float64, img image.Image) (*ColorMap, error) {
	cm, err := NewColorMap(subX, subZ, width, depth)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("color image: %w", ErrInvalidSize)
	}
	for row := 0; row < subZ; row++ {
		for col := 0; col < subX; col++ {
			px := b.Min.X + col*(b.Dx()-1)/subX
			py := b.Min.Y + row*(b.Dy()-1)/subZ
			cm.cells[row*subX+col] = color.RGBAModel.Convert(img.At(px, py)).(color.RGBA)
		}
	}
	return cm, nil
}

// DecodeColorMap reads an encoded paint image (PNG)
func DecodeColorMap(subX, subZ int, width, depth float64, r io.Reader) (*ColorMap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode color image: %w", err)
	}
	return ColorMapFromImage(subX, subZ, width, depth, img)
}

// PaintFromHeight classifies each cell by elevation band and marks a share of grass cells as tree sites
// Low band is floor, high band is rock, the rest grass
func PaintFromHeight(hm *Heightmap, rng *rand.Rand, treeChance float64) *ColorMap {
	sub := hm.Subdivisions()
	cm, _ := NewColorMap(sub, sub, hm.Width(), hm.Depth())
	span := hm.MaxHeight() - hm.MinHeight()
	for i := range cm.cells {
		p := cm.positionForIndex(i)
		// Sample the cell center
		cx := p.X + cm.width/float64(cm.subX)/2
		cz := p.Z - cm.depth/float64(cm.subZ)/2
		t := (hm.HeightAt(cx, cz) - hm.MinHeight()) / span
		switch {
		case t < 0.12:
			cm.cells[i] = PaintFloor
		case t > 0.75:
			cm.cells[i] = PaintRock
		case rng.Float64() < treeChance:
			cm.cells[i] = PaintTree
		default:
			cm.cells[i] = PaintGrass
		}
	}
	return cm
}

func (m *ColorMap) Len() int { return len(m.cells) }

// Paint sets the color of a cell; out-of-range indices are ignored
func (m *ColorMap) Paint(row, col int, c color.RGBA) {
	if row < 0 || col < 0 || row >= m.subZ || col >= m.subX {
		return
	}
	m.cells[row*m.subX+col] = c
}

// ColorAt returns the paint of the cell containing world x, z, clamped to the map
func (m *ColorMap) ColorAt(x, z float64) color.RGBA {
	col := int((x + m.width/2) / m.width * float64(m.subX))
	row := int((m.depth/2 - z) / m.depth * float64(m.subZ))
	col = min(max(col, 0), m.subX-1)
	row = min(max(row, 0), m.subZ-1)
	return m.cells[row*m.subX+col]
}

// PositionsMatching returns the zero-Y corner position of each cell accepted by pred, in index order
func (m *ColorMap) PositionsMatching(pred func(c color.RGBA) bool) []vmath.Vec3F {
	var out []vmath.Vec3F
	for i, c := range m.cells {
		if pred(c) {
			out = append(out, m.positionForIndex(i))
		}
	}
	return out
}

func (m *ColorMap) positionForIndex(i int) vmath.Vec3F {
	cellW := m.width / float64(m.subX)
	cellD := m.depth / float64(m.subZ)
	return vmath.Vec3F{
		X: float64(i%m.subX)*cellW - m.width/2,
		Z: m.depth/2 - float64(i/m.subX)*cellD,
	}
}
