// Package render draws a top-down view of the island and a HUD with tcell
package render

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/particle"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/shockwave"
	"github.com/ericre997/RatioRage/status"
	"github.com/ericre997/RatioRage/terrain"
	"github.com/ericre997/RatioRage/vmath"
)

const helpLine = "click: walk  e: pick up  t/right-click: throw at cursor  p: punch  space: pause  m: mute  q: quit"

// Label is text centred on a world position; ratio displays draw as labels
type Label struct {
	Position vmath.Vec3F
	Text     string
}

// Frame is everything drawn besides the terrain and scene graph
type Frame struct {
	Focus     vmath.Vec3F
	Now       time.Time
	Elapsed   time.Duration
	Waves     []shockwave.Shockwave
	Particles []particle.Particle
	Labels    []Label
}

// Options tune the view
type Options struct {
	CellsPerUnit float64
	ShowHelp     bool
}

// Terminal renders frames to a tcell screen
type Terminal struct {
	screen  tcell.Screen
	ground  *terrain.ColorMap
	heights core.Terrain
	graph   *scene.Graph
	opts    Options

	score     *atomic.Int64
	remaining *atomic.Int64
	target    *status.AtomicString
	paused    *atomic.Bool
	complete  *atomic.Bool
}

// NewTerminal binds the renderer to the world it draws
func NewTerminal(screen tcell.Screen, ground *terrain.ColorMap, heights core.Terrain, graph *scene.Graph, reg *status.Registry, opts Options) *Terminal {
	if opts.CellsPerUnit <= 0 {
		opts.CellsPerUnit = parameter.ViewCellsPerUnit
	}
	return &Terminal{
		screen:    screen,
		ground:    ground,
		heights:   heights,
		graph:     graph,
		opts:      opts,
		score:     reg.Int(status.KeyScore),
		remaining: reg.Int(status.KeyRemaining),
		target:    reg.Strings.Get(status.KeyTarget),
		paused:    reg.Bools.Get(status.KeyPaused),
		complete:  reg.Bools.Get(status.KeyLevelComplete),
	}
}

// View returns the current camera centred on focus
func (t *Terminal) View(focus vmath.Vec3F) View {
	w, h := t.screen.Size()
	mapH := h - 1
	if t.opts.ShowHelp {
		mapH = h - parameter.HUDRows
	}
	return View{
		Width:        w,
		Height:       max(mapH, 0),
		Top:          1,
		CellsPerUnit: t.opts.CellsPerUnit,
		Aspect:       parameter.ViewAspect,
		Center:       focus,
	}
}

// Draw renders one frame and shows it
func (t *Terminal) Draw(f Frame) {
	v := t.View(f.Focus)
	t.screen.Clear()

	t.drawGround(v)
	t.drawWaves(v, f)
	t.drawMeshes(v)
	t.drawParticles(v, f.Particles)
	t.drawLabels(v, f.Labels)
	t.drawHUD(f.Elapsed)

	t.screen.Show()
}

func (t *Terminal) drawGround(v View) {
	span := parameter.TerrainMaxHeight - parameter.TerrainMinHeight
	for row := v.Top; row < v.Top+v.Height; row++ {
		for col := 0; col < v.Width; col++ {
			p := v.ToWorld(col, row)
			h := t.heights.HeightAt(p.X, p.Z)
			water := h < parameter.MinPlayerHeight
			bg := groundColor(t.ground.ColorAt(p.X, p.Z), (h-parameter.TerrainMinHeight)/span, water)
			t.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(tc(bg)))
		}
	}
}

func (t *Terminal) drawWaves(v View, f Frame) {
	style := tcell.StyleDefault.Foreground(tc(rgbWave))
	for _, w := range f.Waves {
		r, alive := w.Radius(f.Now)
		if !alive || r <= 0 {
			continue
		}
		// Roughly one sample per cell of circumference
		steps := max(8, int(2*math.Pi*r*v.CellsPerUnit))
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			p := vmath.Vec3F{X: w.Position.X + r*math.Cos(a), Z: w.Position.Z + r*math.Sin(a)}
			t.put(v, p, 'o', style)
		}
	}
}

func (t *Terminal) drawMeshes(v View) {
	var meshes []*scene.Mesh
	t.graph.Range(func(m *scene.Mesh) {
		switch m.Kind() {
		case scene.KindGroup, scene.KindDigit, scene.KindBar:
			return
		}
		if m.Glyph == 0 || m.Disposed() || !m.EffectivelyVisible() {
			return
		}
		meshes = append(meshes, m)
	})

	// Higher meshes cover lower ones
	type placed struct {
		m   *scene.Mesh
		pos vmath.Vec3F
	}
	ordered := make([]placed, len(meshes))
	for i, m := range meshes {
		ordered[i] = placed{m: m, pos: m.World().Position}
	}
	slices.SortFunc(ordered, func(a, b placed) int {
		if c := cmp.Compare(a.pos.Y, b.pos.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.m.ID(), b.m.ID())
	})

	for _, p := range ordered {
		t.put(v, p.pos, p.m.Glyph, tcell.StyleDefault.Foreground(tc(p.m.Color)).Bold(true))
	}
}

func (t *Terminal) drawParticles(v View, ps []particle.Particle) {
	for i := range ps {
		fade := ps[i].Fade()
		t.put(v, ps[i].Position, '.', tcell.StyleDefault.Foreground(tc(scale(rgbParticle, 0.3+0.7*fade))))
	}
}

func (t *Terminal) drawLabels(v View, labels []Label) {
	style := tcell.StyleDefault.Foreground(tc(rgbLabel)).Bold(true)
	for _, l := range labels {
		col, row, ok := v.ToScreen(l.Position)
		if !ok {
			continue
		}
		start := col - len(l.Text)/2
		for i, r := range l.Text {
			x := start + i
			if x < 0 || x >= v.Width {
				continue
			}
			t.setKeepBackground(x, row, r, style)
		}
	}
}

func (t *Terminal) drawHUD(elapsed time.Duration) {
	w, h := t.screen.Size()
	style := tcell.StyleDefault.Foreground(tc(rgbHUD)).Bold(true)

	line := fmt.Sprintf(" %s   Score %d   Target %s   Left %d",
		FormatElapsed(elapsed), t.score.Load(), t.target.Load(), t.remaining.Load())
	switch {
	case t.complete.Load():
		line += "   LEVEL COMPLETE"
	case t.paused.Load():
		line += "   PAUSED"
	}
	t.text(0, 0, w, line, style)

	if t.opts.ShowHelp && h > 1 {
		t.text(0, h-1, w, helpLine, tcell.StyleDefault.Foreground(tc(scale(rgbHUD, 0.6))))
	}
}

func (t *Terminal) text(x, y, w int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if x+i >= w {
			return
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// put draws glyph at p over the existing ground color
func (t *Terminal) put(v View, p vmath.Vec3F, glyph rune, style tcell.Style) {
	col, row, ok := v.ToScreen(p)
	if !ok {
		return
	}
	t.setKeepBackground(col, row, glyph, style)
}

func (t *Terminal) setKeepBackground(col, row int, glyph rune, style tcell.Style) {
	_, _, under, _ := t.screen.GetContent(col, row)
	_, bg, _ := under.Decompose()
	t.screen.SetContent(col, row, glyph, nil, style.Background(bg))
}

// FormatElapsed renders d as mm:ss:mmm
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%03d", ms/60000, (ms/1000)%60, ms%1000)
}
