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
	"github.com/ericre997/RatioRage/shockwave"
	"github.com/ericre997/RatioRage/vmath"
)

// BarrelState is the lifecycle stage of a barrel
type BarrelState uint8

const (
	BarrelIdle BarrelState = iota
	BarrelCarried
	BarrelThrown
	BarrelExploded
)

var barrelStateNames = [...]string{"idle", "carried", "thrown", "exploded"}

func (s BarrelState) String() string {
	if int(s) < len(barrelStateNames) {
		return barrelStateNames[s]
	}
	return "unknown"
}

// Barrel is one throwable destructible
type Barrel struct {
	id    uint64
	state BarrelState
	root  core.Node
	body  *destructible.Composite
}

func (b *Barrel) ID() uint64                    { return b.id }
func (b *Barrel) State() BarrelState            { return b.state }
func (b *Barrel) Root() core.Node               { return b.root }
func (b *Barrel) Body() *destructible.Composite { return b.body }

// Position is the barrel root's world position
func (b *Barrel) Position() vmath.Vec3F {
	return b.root.World().Position
}

// Proximity reports whether any live target is within squared distance d2 of pos
type Proximity interface {
	AnyWithin(pos vmath.Vec3F, d2 float64) bool
}

// DetonateFunc receives every barrel that explodes on its own, outside a shockwave sweep
type DetonateFunc func(d shockwave.Detonation)

// BarrelManager tracks barrels through idle, carried, thrown and exploded
// Barrel lifecycle: spawn idle; pickup moves it to carried; throw hands it
// to the simulation; contact or a shockwave explodes it; TTL disposes it
type BarrelManager struct {
	deps      Deps
	log       zerolog.Logger
	nextID    uint64
	byID      map[uint64]*Barrel
	idle      []*Barrel
	carried   *Barrel
	thrown    []*Barrel
	exploded  []*Barrel
	proximity Proximity
	onDet     DetonateFunc
}

var _ shockwave.Target = (*BarrelManager)(nil)

func NewBarrelManager(deps Deps) *BarrelManager {
	return &BarrelManager{
		deps:   deps,
		log:    deps.Log.With().Str("component", "barrel").Logger(),
		nextID: 1,
		byID:   make(map[uint64]*Barrel),
	}
}

// SetProximity installs the target query used for in-flight hits
func (m *BarrelManager) SetProximity(p Proximity) {
	m.proximity = p
}

// OnDetonate installs the callback for barrels that explode in flight
func (m *BarrelManager) OnDetonate(fn DetonateFunc) {
	m.onDet = fn
}

// Spawn creates one idle barrel resting on each ground position
func (m *BarrelManager) Spawn(positions []vmath.Vec3F) error {
	for _, pos := range positions {
		b, err := m.build(pos)
		if err != nil {
			return err
		}
		m.byID[b.id] = b
		m.idle = append(m.idle, b)
	}
	m.log.Debug().Int("count", len(positions)).Msg("Barrels spawned")
	return nil
}

func (m *BarrelManager) build(ground vmath.Vec3F) (*Barrel, error) {
	id := m.nextID
	m.nextID++

	name := fmt.Sprintf("barrel%d", id)
	root := m.deps.Graph.NewGroup(name)
	root.SetLocal(vmath.Transform{
		Scale:    vmath.V3FScale(vmath.V3FOne, parameter.BarrelScaling),
		Rotation: vmath.QuatIdentity,
		Position: vmath.V3FAdd(ground, vmath.Vec3F{Y: parameter.BarrelHeight * parameter.BarrelScaling / 2}),
	})

	piece := m.deps.Graph.Barrel(name+".body", parameter.BarrelFragments)
	obj, err := destructible.New(destructible.Spec{
		Root:      root,
		Solids:    []core.Node{piece.Solid},
		Fragments: nodes(piece.Fragments),
		TTL:       parameter.ExplosionTTL,
	}, m.deps.Clock, m.deps.Rng)
	if err != nil {
		root.Dispose()
		return nil, fmt.Errorf("build %s: %w", name, err)
	}

	return &Barrel{
		id:   id,
		root: root,
		body: destructible.NewComposite(root, m.deps.Emitter, obj),
	}, nil
}

// Get returns a barrel by id in any state
func (m *BarrelManager) Get(id uint64) (*Barrel, bool) {
	b, ok := m.byID[id]
	return b, ok
}

// Carried returns the barrel currently held
func (m *BarrelManager) Carried() (*Barrel, bool) {
	return m.carried, m.carried != nil
}

// Nearest returns the closest idle barrel within squared planar distance maxD2
func (m *BarrelManager) Nearest(pos vmath.Vec3F, maxD2 float64) (*Barrel, bool) {
	var best *Barrel
	bestD2 := maxD2
	for _, b := range m.idle {
		d2 := vmath.V3FDistSqXZ(pos, b.Position())
		if d2 <= bestD2 {
			best, bestD2 = b, d2
		}
	}
	return best, best != nil
}

// PickUp parents an idle barrel to holder
func (m *BarrelManager) PickUp(id uint64, holder core.Node) error {
	if holder == nil {
		return ErrNilHolder
	}
	b, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("barrel %d: %w", id, ErrUnknownObject)
	}
	if b.state != BarrelIdle {
		return fmt.Errorf("barrel %d is %s: %w", id, b.state, ErrNotIdle)
	}
	if m.carried != nil {
		return ErrAlreadyHolding
	}

	m.idle = remove(m.idle, b)
	b.state = BarrelCarried
	m.carried = b

	local := b.root.Local()
	local.Position = vmath.Vec3F{Y: parameter.CarryHeight}
	local.Rotation = vmath.QuatIdentity
	b.root.SetParent(holder)
	b.root.SetLocal(local)
	return nil
}

// Throw releases the carried barrel into the simulation with velocity
func (m *BarrelManager) Throw(id uint64, velocity vmath.Vec3F) error {
	b := m.carried
	if b == nil || b.id != id {
		return fmt.Errorf("barrel %d: %w", id, ErrNotCarried)
	}

	world := b.root.World()
	b.root.SetParent(nil)
	b.root.SetLocal(world)

	if err := m.deps.Sim.AttachImpulseBody(b.root, parameter.FragmentMass, parameter.FragmentFriction, parameter.FragmentRestitution); err != nil {
		// Leave it on the ground rather than lose it
		b.state = BarrelIdle
		m.carried = nil
		m.idle = append(m.idle, b)
		return fmt.Errorf("throw barrel %d: %w", id, err)
	}
	m.deps.Sim.SetLinearVelocity(b.root, velocity)

	m.carried = nil
	b.state = BarrelThrown
	m.thrown = append(m.thrown, b)
	return nil
}

// Category implements shockwave.Target
func (m *BarrelManager) Category() shockwave.Category {
	return shockwave.CategoryBarrel
}

// CheckForCollisions returns idle and thrown barrels within squared 3D distance d2
// The carried barrel is shielded by the player
func (m *BarrelManager) CheckForCollisions(pos vmath.Vec3F, d2 float64) []*Barrel {
	var out []*Barrel
	for _, set := range [][]*Barrel{m.idle, m.thrown} {
		for _, b := range set {
			if vmath.V3FDistSq(pos, b.Position()) <= d2 {
				out = append(out, b)
			}
		}
	}
	return out
}

// Collide implements shockwave.Target
func (m *BarrelManager) Collide(pos vmath.Vec3F, r2 float64) []uint64 {
	hits := m.CheckForCollisions(pos, r2)
	ids := make([]uint64, len(hits))
	for i, b := range hits {
		ids[i] = b.id
	}
	return ids
}

// Detonate implements shockwave.Target
func (m *BarrelManager) Detonate(id uint64) (shockwave.Detonation, error) {
	return m.Explode(id)
}

// Explode breaks a barrel apart and queues it for disposal
func (m *BarrelManager) Explode(id uint64) (shockwave.Detonation, error) {
	b, ok := m.byID[id]
	if !ok {
		return shockwave.Detonation{}, fmt.Errorf("barrel %d: %w", id, ErrUnknownObject)
	}
	if b.state == BarrelExploded {
		return shockwave.Detonation{}, fmt.Errorf("barrel %d: %w", id, destructible.ErrAlreadyExploded)
	}

	pos := b.Position()
	switch b.state {
	case BarrelIdle:
		m.idle = remove(m.idle, b)
	case BarrelCarried:
		m.carried = nil
		world := b.root.World()
		b.root.SetParent(nil)
		b.root.SetLocal(world)
	case BarrelThrown:
		m.thrown = remove(m.thrown, b)
		m.deps.Sim.RemoveBody(b.root)
	}
	b.state = BarrelExploded
	m.exploded = append(m.exploded, b)

	err := b.body.Explode(m.deps.Sim)
	if err != nil {
		m.log.Error().Err(err).Uint64("id", id).Msg("Barrel explosion incomplete")
	}
	return shockwave.Detonation{Position: pos}, nil
}

// Update explodes thrown barrels on contact and disposes expired debris
func (m *BarrelManager) Update(dt time.Duration) {
	// Snapshot: Explode mutates m.thrown
	for _, b := range slices.Clone(m.thrown) {
		if !m.hasLanded(b) {
			continue
		}
		d, err := m.Explode(b.id)
		if err != nil {
			m.log.Error().Err(err).Uint64("id", b.id).Msg("Thrown barrel explosion failed")
			continue
		}
		if m.onDet != nil {
			m.onDet(d)
		}
	}

	kept := m.exploded[:0]
	for _, b := range m.exploded {
		if !b.body.ShouldDispose() {
			kept = append(kept, b)
			continue
		}
		if err := b.body.Dispose(); err != nil {
			m.log.Error().Err(err).Uint64("id", b.id).Msg("Barrel dispose failed")
		}
		delete(m.byID, b.id)
	}
	clear(m.exploded[len(kept):])
	m.exploded = kept
}

func (m *BarrelManager) hasLanded(b *Barrel) bool {
	if m.deps.Sim.Grounded(b.root) {
		return true
	}
	return m.proximity != nil && m.proximity.AnyWithin(b.Position(), parameter.BarrelRatioHitD2)
}

// Counts returns the size of each collection
func (m *BarrelManager) Counts() (idle, carried, thrown, exploded int) {
	if m.carried != nil {
		carried = 1
	}
	return len(m.idle), carried, len(m.thrown), len(m.exploded)
}

// Barrels returns every tracked barrel in id order
func (m *BarrelManager) Barrels() []*Barrel {
	out := make([]*Barrel, 0, len(m.byID))
	for _, b := range m.byID {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *Barrel) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Clear disposes every barrel regardless of state
func (m *BarrelManager) Clear() {
	for _, b := range m.byID {
		if b.state == BarrelThrown {
			m.deps.Sim.RemoveBody(b.root)
		}
		if !b.body.IsDisposed() {
			_ = b.body.Dispose()
		}
	}
	clear(m.byID)
	m.idle, m.thrown, m.exploded, m.carried = nil, nil, nil, nil
}

func remove[T comparable](s []T, v T) []T {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

func nodes[T core.Node](in []T) []core.Node {
	out := make([]core.Node, len(in))
	for i, n := range in {
		out[i] = n
	}
	return out
}
