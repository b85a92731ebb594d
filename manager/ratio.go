package manager

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/destructible"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/ratio"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/shockwave"
	"github.com/ericre997/RatioRage/vmath"
)

// RatioDisplay is a ratio rendered as numerator digits, a bar and denominator digits
type RatioDisplay struct {
	id         uint64
	value      ratio.Ratio
	equivalent bool
	root       *scene.Mesh
	body       *destructible.Composite
}

func (r *RatioDisplay) ID() uint64                    { return r.id }
func (r *RatioDisplay) Ratio() ratio.Ratio            { return r.value }
func (r *RatioDisplay) Equivalent() bool              { return r.equivalent }
func (r *RatioDisplay) Root() core.Node               { return r.root }
func (r *RatioDisplay) Body() *destructible.Composite { return r.body }
func (r *RatioDisplay) IsExploded() bool              { return r.body.IsExploded() }

// Position is the display root's world position at ground level
func (r *RatioDisplay) Position() vmath.Vec3F {
	return r.root.World().Position
}

// RatioManager owns the ratio displays of one level
type RatioManager struct {
	deps     Deps
	log      zerolog.Logger
	nextID   uint64
	target   ratio.Ratio
	live     []*RatioDisplay
	exploded []*RatioDisplay
	byID     map[uint64]*RatioDisplay
}

var _ shockwave.Target = (*RatioManager)(nil)

func NewRatioManager(deps Deps) *RatioManager {
	return &RatioManager{
		deps:   deps,
		log:    deps.Log.With().Str("component", "ratio").Logger(),
		nextID: 1,
		byID:   make(map[uint64]*RatioDisplay),
	}
}

// Target returns the ratio equivalent displays must match
func (m *RatioManager) Target() ratio.Ratio {
	return m.target
}

// Spawn builds a display for every ratio in set, equivalent ones first, at positions
func (m *RatioManager) Spawn(set ratio.Set, positions []vmath.Vec3F) error {
	all := set.All()
	if len(positions) < len(all) {
		return fmt.Errorf("%d ratios, %d positions: %w", len(all), len(positions), ErrTooFewSlots)
	}
	m.target = set.Target

	for i, r := range all {
		d, err := m.build(r, positions[i])
		if err != nil {
			return err
		}
		m.live = append(m.live, d)
		m.byID[d.id] = d
		m.log.Debug().Uint64("id", d.id).Str("ratio", r.String()).Bool("equivalent", d.equivalent).Msg("Ratio placed")
	}
	return nil
}

func (m *RatioManager) build(r ratio.Ratio, pos vmath.Vec3F) (*RatioDisplay, error) {
	id := m.nextID
	m.nextID++

	name := fmt.Sprintf("ratio%d", id)
	root := m.deps.Graph.NewGroup(name)
	root.SetPosition(pos)

	num := ratio.Digits(r.Numerator)
	den := ratio.Digits(r.Denominator)

	var parts []*destructible.Object
	addRow := func(row string, digits []int, y float64) error {
		start := -float64(len(digits)-1) * parameter.DigitWidth / 2
		for i, d := range digits {
			pname := fmt.Sprintf("%s.%s%d", name, row, i)
			anchor := m.deps.Graph.NewGroup(pname)
			anchor.SetParent(root)
			anchor.SetPosition(vmath.Vec3F{X: start + float64(i)*parameter.DigitWidth, Y: y})

			piece := m.deps.Graph.Digit(pname+".digit", d, parameter.DigitFragments)
			obj, err := m.part(anchor, piece)
			if err != nil {
				return err
			}
			parts = append(parts, obj)
		}
		return nil
	}

	if err := addRow("num", num, parameter.NumeratorY); err != nil {
		root.Dispose()
		return nil, err
	}

	// Four authored bar widths; wider numbers reuse the widest
	size := min(max(len(num), len(den)), parameter.BarSizes-1)
	barAnchor := m.deps.Graph.NewGroup(name + ".bar")
	barAnchor.SetParent(root)
	barAnchor.SetPosition(vmath.Vec3F{Y: parameter.BarY})
	bar, err := m.part(barAnchor, m.deps.Graph.Bar(name+".bar.solid", size, parameter.BarFragments))
	if err != nil {
		root.Dispose()
		return nil, err
	}
	parts = append(parts, bar)

	if err := addRow("den", den, parameter.DenominatorY); err != nil {
		root.Dispose()
		return nil, err
	}

	return &RatioDisplay{
		id:         id,
		value:      r,
		equivalent: ratio.Equivalent(r, m.target),
		root:       root,
		body:       destructible.NewComposite(root, m.deps.Emitter, parts...),
	}, nil
}

func (m *RatioManager) part(anchor *scene.Mesh, piece scene.Piece) (*destructible.Object, error) {
	obj, err := destructible.New(destructible.Spec{
		Root:      anchor,
		Solids:    []core.Node{piece.Solid},
		Fragments: nodes(piece.Fragments),
		TTL:       parameter.ExplosionTTL,
	}, m.deps.Clock, m.deps.Rng)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", anchor.Name(), err)
	}
	return obj, nil
}

// Get returns a display by id while it is tracked
func (m *RatioManager) Get(id uint64) (*RatioDisplay, bool) {
	d, ok := m.byID[id]
	return d, ok
}

// Category implements shockwave.Target
func (m *RatioManager) Category() shockwave.Category {
	return shockwave.CategoryRatio
}

// CheckForCollisions returns intact displays within squared 3D distance d2 of pos
func (m *RatioManager) CheckForCollisions(pos vmath.Vec3F, d2 float64) []*RatioDisplay {
	var out []*RatioDisplay
	for _, d := range m.live {
		if !d.IsExploded() && vmath.V3FDistSq(pos, d.Position()) <= d2 {
			out = append(out, d)
		}
	}
	return out
}

// AnyWithin reports whether any intact display is within squared 3D distance d2
func (m *RatioManager) AnyWithin(pos vmath.Vec3F, d2 float64) bool {
	for _, d := range m.live {
		if !d.IsExploded() && vmath.V3FDistSq(pos, d.Position()) <= d2 {
			return true
		}
	}
	return false
}

// Collide implements shockwave.Target
func (m *RatioManager) Collide(pos vmath.Vec3F, r2 float64) []uint64 {
	hits := m.CheckForCollisions(pos, r2)
	ids := make([]uint64, len(hits))
	for i, d := range hits {
		ids[i] = d.id
	}
	return ids
}

// Detonate implements shockwave.Target
func (m *RatioManager) Detonate(id uint64) (shockwave.Detonation, error) {
	return m.Explode(id)
}

// Explode breaks a display apart; Update moves it to the disposal list
func (m *RatioManager) Explode(id uint64) (shockwave.Detonation, error) {
	d, ok := m.byID[id]
	if !ok {
		return shockwave.Detonation{}, fmt.Errorf("ratio %d: %w", id, ErrUnknownObject)
	}
	if d.IsExploded() {
		return shockwave.Detonation{}, fmt.Errorf("ratio %d: %w", id, destructible.ErrAlreadyExploded)
	}

	det := shockwave.Detonation{Position: d.Position(), Ratio: d.value, IsRatio: true}
	if err := d.body.Explode(m.deps.Sim); err != nil {
		m.log.Error().Err(err).Uint64("id", id).Msg("Ratio explosion incomplete")
	}
	return det, nil
}

// Update spins intact displays, retires exploded ones and disposes expired debris
func (m *RatioManager) Update(dt time.Duration) {
	spin := vmath.QuatFromAxisAngle(vmath.V3FUp, parameter.RatioSpinRadiansPerSecond*dt.Seconds())

	kept := m.live[:0]
	for _, d := range m.live {
		if d.IsExploded() {
			m.exploded = append(m.exploded, d)
			continue
		}
		d.root.SetRotation(vmath.QuatNormalize(vmath.QuatMul(spin, d.root.Local().Rotation)))
		kept = append(kept, d)
	}
	clear(m.live[len(kept):])
	m.live = kept

	expired := m.exploded[:0]
	for _, d := range m.exploded {
		if !d.body.ShouldDispose() {
			expired = append(expired, d)
			continue
		}
		if err := d.body.Dispose(); err != nil {
			m.log.Error().Err(err).Uint64("id", d.id).Msg("Ratio dispose failed")
		}
		delete(m.byID, d.id)
	}
	clear(m.exploded[len(expired):])
	m.exploded = expired
}

// Remaining counts intact displays whose equivalence to the target matches equivalent
func (m *RatioManager) Remaining(equivalent bool) int {
	n := 0
	for _, d := range m.live {
		if !d.IsExploded() && d.equivalent == equivalent {
			n++
		}
	}
	return n
}

// Counts returns intact and awaiting-disposal sizes
func (m *RatioManager) Counts() (live, exploded int) {
	for _, d := range m.live {
		if d.IsExploded() {
			exploded++
		} else {
			live++
		}
	}
	return live, exploded + len(m.exploded)
}

// Displays returns every tracked display in id order
func (m *RatioManager) Displays() []*RatioDisplay {
	out := make([]*RatioDisplay, 0, len(m.byID))
	for _, d := range m.byID {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *RatioDisplay) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Clear disposes every display
func (m *RatioManager) Clear() {
	for _, d := range m.byID {
		if !d.body.IsDisposed() {
			_ = d.body.Dispose()
		}
	}
	clear(m.byID)
	m.live, m.exploded = nil, nil
}
