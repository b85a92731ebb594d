package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/ericre997/RatioRage/terrain"
	"github.com/ericre997/RatioRage/vmath"
)

var (
	rgbWater = color.RGBA{R: 30, G: 70, B: 140, A: 255}
	rgbSand  = color.RGBA{R: 194, G: 178, B: 128, A: 255}
	rgbRock  = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	rgbGrass = color.RGBA{R: 70, G: 140, B: 60, A: 255}
	rgbWood  = color.RGBA{R: 40, G: 100, B: 45, A: 255}

	rgbWave     = color.RGBA{R: 255, G: 160, B: 40, A: 255}
	rgbParticle = color.RGBA{R: 255, G: 220, B: 120, A: 255}
	rgbLabel    = color.RGBA{R: 240, G: 220, B: 80, A: 255}
	rgbHUD      = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

func tc(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// scale darkens or brightens c by f
func scale(c color.RGBA, f float64) color.RGBA {
	ch := func(v uint8) uint8 { return uint8(vmath.Clamp(float64(v)*f, 0, 255)) }
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// groundColor maps a painted cell to its display color, shaded by height
// t is height normalized to [0,1]; below the water line the cell is water
func groundColor(paint color.RGBA, t float64, water bool) color.RGBA {
	if water {
		return rgbWater
	}
	var base color.RGBA
	switch {
	case terrain.IsTreeCell(paint):
		base = rgbWood
	case paint == terrain.PaintFloor:
		base = rgbSand
	case paint == terrain.PaintRock:
		base = rgbRock
	default:
		base = rgbGrass
	}
	return scale(base, 0.7+0.5*vmath.Clamp(t, 0, 1))
}
