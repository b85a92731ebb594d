package render

import (
	"math"

	"github.com/ericre997/RatioRage/vmath"
)

// View maps the world XZ plane onto screen cells, north up
// Rows are squashed by Aspect because terminal cells are taller than wide
type View struct {
	Width, Height int // Map area in cells
	Top           int // First map row
	CellsPerUnit  float64
	Aspect        float64
	Center        vmath.Vec3F
}

// ToScreen returns the cell under p; ok is false outside the map area
func (v View) ToScreen(p vmath.Vec3F) (col, row int, ok bool) {
	col = v.Width/2 + int(math.Round((p.X-v.Center.X)*v.CellsPerUnit))
	row = v.Top + v.Height/2 + int(math.Round(-(p.Z-v.Center.Z)*v.CellsPerUnit*v.Aspect))
	ok = col >= 0 && col < v.Width && row >= v.Top && row < v.Top+v.Height
	return col, row, ok
}

// ToWorld returns the ground point at the centre of a cell, Y zero
func (v View) ToWorld(col, row int) vmath.Vec3F {
	return vmath.Vec3F{
		X: v.Center.X + float64(col-v.Width/2)/v.CellsPerUnit,
		Z: v.Center.Z - float64(row-v.Top-v.Height/2)/(v.CellsPerUnit*v.Aspect),
	}
}
