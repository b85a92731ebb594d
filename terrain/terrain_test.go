package terrain

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericre997/RatioRage/vmath"
)

func flatConfig() Config {
	return Config{Width: 10, Depth: 10, Subdivisions: 10, MinHeight: 0, MaxHeight: 10}
}

func TestConfigValidation(t *testing.T) {
	_, err := NewIsland(Config{Width: 0, Depth: 1, Subdivisions: 1, MaxHeight: 1}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewIsland(Config{Width: 1, Depth: 1, Subdivisions: 1, MinHeight: 2, MaxHeight: 2}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestIslandHeightsInRangeAndRimLow(t *testing.T) {
	cfg := Config{Width: 100, Depth: 100, Subdivisions: 100, MinHeight: 0, MaxHeight: 10}
	hm, err := NewIsland(cfg, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)

	for _, h := range hm.heights {
		assert.GreaterOrEqual(t, h, 0.0)
		assert.LessOrEqual(t, h, 10.0)
	}
	// Corners are beyond the falloff radius
	assert.Equal(t, 0.0, hm.HeightAt(-50, 50))
	assert.Equal(t, 0.0, hm.HeightAt(50, -50))
}

func TestIslandDeterministic(t *testing.T) {
	cfg := flatConfig()
	a, err := NewIsland(cfg, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	b, err := NewIsland(cfg, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	assert.Equal(t, a.heights, b.heights)
}

func TestHeightAtBilinear(t *testing.T) {
	hm := newHeightmap(flatConfig())
	// Row 0 is the +Z edge, column 0 the -X edge
	hm.Set(0, 0, 4)
	assert.InDelta(t, 4.0, hm.HeightAt(-5, 5), 1e-9)
	// Halfway to the next column
	assert.InDelta(t, 2.0, hm.HeightAt(-4.5, 5), 1e-9)
	// Quarter cell in both axes
	assert.InDelta(t, 4.0*0.5*0.5, hm.HeightAt(-4.5, 4.5), 1e-9)
	assert.Equal(t, 0.0, hm.HeightAt(0, 0))
}

func TestHeightAtClampsOutside(t *testing.T) {
	hm := newHeightmap(flatConfig())
	hm.Set(10, 10, 3)
	assert.InDelta(t, 3.0, hm.HeightAt(100, -100), 1e-9)
}

func TestNormalAt(t *testing.T) {
	hm := newHeightmap(flatConfig())
	n := hm.NormalAt(0, 0)
	assert.InDelta(t, 1.0, n.Y, 1e-9)

	// Ramp rising along +X: normal tilts toward -X
	for r := 0; r <= 10; r++ {
		for c := 0; c <= 10; c++ {
			hm.Set(r, c, float64(c))
		}
	}
	n = hm.NormalAt(0, 0)
	assert.Less(t, n.X, 0.0)
	assert.InDelta(t, 0.0, n.Z, 1e-9)
	assert.InDelta(t, 1.0, vmath.V3FMag(n), 1e-9)
	assert.InDelta(t, math.Sqrt(0.5), n.Y, 1e-9)
}

func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 11, 11))
	img.SetGray(10, 0, color.Gray{Y: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	hm, err := Decode(flatConfig(), &buf)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, hm.HeightAt(5, 5), 1e-6)
	assert.InDelta(t, 0.0, hm.HeightAt(-5, 5), 1e-6)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(flatConfig(), bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestColorMapPositions(t *testing.T) {
	cm, err := NewColorMap(4, 4, 8, 8)
	require.NoError(t, err)
	cm.Paint(0, 0, PaintTree)
	cm.Paint(3, 2, PaintTree)
	cm.Paint(1, 1, PaintGrass)

	trees := cm.PositionsMatching(IsTreeCell)
	require.Len(t, trees, 2)
	assert.Equal(t, vmath.Vec3F{X: -4, Z: 4}, trees[0])
	assert.Equal(t, vmath.Vec3F{X: 0, Z: -2}, trees[1])

	all := cm.PositionsMatching(AnyCell)
	assert.Len(t, all, 16)
	for _, p := range all {
		assert.Zero(t, p.Y)
	}
}

func TestColorAt(t *testing.T) {
	cm, err := NewColorMap(4, 4, 8, 8)
	require.NoError(t, err)
	cm.Paint(0, 0, PaintRock)
	assert.Equal(t, PaintRock, cm.ColorAt(-3.5, 3.5))
	assert.Equal(t, PaintRock, cm.ColorAt(-100, 100))
	assert.Equal(t, color.RGBA{}, cm.ColorAt(3, -3))
}

func TestIsTreeCell(t *testing.T) {
	assert.True(t, IsTreeCell(PaintTree))
	assert.False(t, IsTreeCell(PaintGrass))
	assert.False(t, IsTreeCell(color.RGBA{R: 1, B: 255, A: 255}))
}

func TestPaintFromHeight(t *testing.T) {
	cfg := Config{Width: 100, Depth: 100, Subdivisions: 50, MinHeight: 0, MaxHeight: 10}
	hm, err := NewIsland(cfg, rand.New(rand.NewPCG(5, 5)))
	require.NoError(t, err)

	cm := PaintFromHeight(hm, rand.New(rand.NewPCG(1, 2)), 0.3)
	assert.Equal(t, 50*50, cm.Len())
	// Corners are sea level
	assert.Equal(t, PaintFloor, cm.ColorAt(-49, 49))

	for _, p := range cm.PositionsMatching(IsTreeCell) {
		c := vmath.V3FAdd(p, vmath.Vec3F{X: 1, Z: -1})
		assert.Greater(t, hm.HeightAt(c.X, c.Z), 1.0)
	}
}

func TestColorMapFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	img.Set(0, 0, PaintTree)
	cm, err := ColorMapFromImage(2, 2, 4, 4, img)
	require.NoError(t, err)
	assert.Equal(t, []vmath.Vec3F{{X: -2, Z: 2}}, cm.PositionsMatching(IsTreeCell))
}
