package terrain

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"math"
	"math/rand/v2"

	"github.com/ericre997/RatioRage/vmath"
)

var (
	ErrInvalidSize  = errors.New("terrain dimensions must be positive")
	ErrInvalidRange = errors.New("terrain height range is empty")
)

// Heightmap is a regular grid of elevations centered on the world origin
// Row 0 lies at z = +depth/2, column 0 at x = -width/2
type Heightmap struct {
	width, depth float64
	subdivisions int
	minH, maxH   float64
	// heights holds (subdivisions+1)² samples, row-major
	heights []float64
}

// Config sizes a heightmap
type Config struct {
	Width        float64
	Depth        float64
	Subdivisions int
	MinHeight    float64
	MaxHeight    float64
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Depth <= 0 || c.Subdivisions <= 0 {
		return ErrInvalidSize
	}
	if c.MaxHeight <= c.MinHeight {
		return ErrInvalidRange
	}
	return nil
}

func newHeightmap(cfg Config) *Heightmap {
	n := cfg.Subdivisions + 1
	return &Heightmap{
		width:        cfg.Width,
		depth:        cfg.Depth,
		subdivisions: cfg.Subdivisions,
		minH:         cfg.MinHeight,
		maxH:         cfg.MaxHeight,
		heights:      make([]float64, n*n),
	}
}

// NewIsland generates an island: layered value noise attenuated by a radial falloff
// so the rim sits at MinHeight and the interior rises toward MaxHeight
func NewIsland(cfg Config, rng *rand.Rand) (*Heightmap, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	hm := newHeightmap(cfg)
	n := cfg.Subdivisions + 1

	const lattice = 8
	noise := make([]float64, (lattice+1)*(lattice+1))
	for i := range noise {
		noise[i] = rng.Float64()
	}
	sample := func(u, v float64) float64 {
		x, y := u*lattice, v*lattice
		x0, y0 := int(x), int(y)
		if x0 >= lattice {
			x0 = lattice - 1
		}
		if y0 >= lattice {
			y0 = lattice - 1
		}
		fx, fy := smooth(x-float64(x0)), smooth(y-float64(y0))
		a := noise[y0*(lattice+1)+x0]
		b := noise[y0*(lattice+1)+x0+1]
		c := noise[(y0+1)*(lattice+1)+x0]
		d := noise[(y0+1)*(lattice+1)+x0+1]
		return vmath.Lerp(vmath.Lerp(a, b, fx), vmath.Lerp(c, d, fx), fy)
	}

	span := cfg.MaxHeight - cfg.MinHeight
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			u := float64(c) / float64(cfg.Subdivisions)
			v := float64(r) / float64(cfg.Subdivisions)
			dx, dz := u*2-1, v*2-1
			falloff := vmath.Clamp(1-math.Sqrt(dx*dx+dz*dz), 0, 1)
			h := 0.6*sample(u, v) + 0.4*sample(math.Mod(u*2, 1), math.Mod(v*2, 1))
			hm.heights[r*n+c] = cfg.MinHeight + span*vmath.Clamp(h*falloff*1.8, 0, 1)
		}
	}
	return hm, nil
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

// FromImage samples a grayscale height image; black maps to MinHeight, white to MaxHeight
func FromImage(cfg Config, img image.Image) (*Heightmap, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	hm := newHeightmap(cfg)
	n := cfg.Subdivisions + 1
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("height image: %w", ErrInvalidSize)
	}
	span := cfg.MaxHeight - cfg.MinHeight
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			px := b.Min.X + c*(b.Dx()-1)/cfg.Subdivisions
			py := b.Min.Y + r*(b.Dy()-1)/cfg.Subdivisions
			red, green, blue, _ := img.At(px, py).RGBA()
			// Luminance weights, 16-bit channels
			lum := (0.3*float64(red) + 0.59*float64(green) + 0.11*float64(blue)) / 0xffff
			hm.heights[r*n+c] = cfg.MinHeight + span*lum
		}
	}
	return hm, nil
}

// Decode reads an encoded height image (PNG) and builds a heightmap from it
func Decode(cfg Config, r io.Reader) (*Heightmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode height image: %w", err)
	}
	return FromImage(cfg, img)
}

func (h *Heightmap) Width() float64     { return h.width }
func (h *Heightmap) Depth() float64     { return h.depth }
func (h *Heightmap) Subdivisions() int  { return h.subdivisions }
func (h *Heightmap) MinHeight() float64 { return h.minH }
func (h *Heightmap) MaxHeight() float64 { return h.maxH }

// Set overwrites one grid sample; used by tests and editors
func (h *Heightmap) Set(row, col int, height float64) {
	n := h.subdivisions + 1
	if row < 0 || col < 0 || row >= n || col >= n {
		return
	}
	h.heights[row*n+col] = height
}

// grid converts world XZ to fractional grid coordinates, clamped to the map
func (h *Heightmap) grid(x, z float64) (col, row float64) {
	s := float64(h.subdivisions)
	col = vmath.Clamp((x+h.width/2)/h.width*s, 0, s)
	row = vmath.Clamp((h.depth/2-z)/h.depth*s, 0, s)
	return col, row
}

// HeightAt bilinearly interpolates the elevation at world x, z
// Coordinates outside the map clamp to the nearest edge
func (h *Heightmap) HeightAt(x, z float64) float64 {
	col, row := h.grid(x, z)
	n := h.subdivisions + 1
	c0, r0 := int(col), int(row)
	if c0 >= h.subdivisions {
		c0 = h.subdivisions - 1
	}
	if r0 >= h.subdivisions {
		r0 = h.subdivisions - 1
	}
	fc, fr := col-float64(c0), row-float64(r0)
	a := h.heights[r0*n+c0]
	b := h.heights[r0*n+c0+1]
	c := h.heights[(r0+1)*n+c0]
	d := h.heights[(r0+1)*n+c0+1]
	return vmath.Lerp(vmath.Lerp(a, b, fc), vmath.Lerp(c, d, fc), fr)
}

// NormalAt estimates the surface normal by central differences over one cell
func (h *Heightmap) NormalAt(x, z float64) vmath.Vec3F {
	dx := h.width / float64(h.subdivisions)
	dz := h.depth / float64(h.subdivisions)
	hl := h.HeightAt(x-dx, z)
	hr := h.HeightAt(x+dx, z)
	hd := h.HeightAt(x, z-dz)
	hu := h.HeightAt(x, z+dz)
	return vmath.V3FNormalize(vmath.Vec3F{
		X: (hl - hr) / (2 * dx),
		Y: 1,
		Z: (hd - hu) / (2 * dz),
	})
}
