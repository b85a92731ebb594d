package manager

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericre997/RatioRage/destructible"
	"github.com/ericre997/RatioRage/engine"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/physics"
	"github.com/ericre997/RatioRage/ratio"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/shockwave"
	"github.com/ericre997/RatioRage/vmath"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type flatTerrain struct{}

func (flatTerrain) HeightAt(x, z float64) float64     { return 0 }
func (flatTerrain) NormalAt(x, z float64) vmath.Vec3F { return vmath.V3FUp }

type countingEmitter struct {
	bursts []vmath.Vec3F
}

func (e *countingEmitter) Burst(pos vmath.Vec3F) { e.bursts = append(e.bursts, pos) }

type stubProximity bool

func (p stubProximity) AnyWithin(vmath.Vec3F, float64) bool { return bool(p) }

type fixture struct {
	deps    Deps
	clock   *engine.MockTimeProvider
	world   *physics.World
	emitter *countingEmitter
}

func newFixture() *fixture {
	clock := engine.NewMockTimeProvider(epoch)
	world := physics.NewWorld(flatTerrain{}, parameter.Gravity)
	emitter := &countingEmitter{}
	return &fixture{
		deps: Deps{
			Graph:   scene.NewGraph(),
			Clock:   clock,
			Sim:     world,
			Emitter: emitter,
			Rng:     rand.New(rand.NewPCG(1, 2)),
			Log:     zerolog.Nop(),
		},
		clock:   clock,
		world:   world,
		emitter: emitter,
	}
}

func TestBarrelSpawnRestsOnGround(t *testing.T) {
	f := newFixture()
	m := NewBarrelManager(f.deps)
	require.NoError(t, m.Spawn([]vmath.Vec3F{{X: 1, Y: 2, Z: 3}, {X: 5, Z: 5}}))

	idle, carried, thrown, exploded := m.Counts()
	assert.Equal(t, [4]int{2, 0, 0, 0}, [4]int{idle, carried, thrown, exploded})

	b := m.Barrels()[0]
	assert.Equal(t, BarrelIdle, b.State())
	assert.InDelta(t, 2+parameter.BarrelHeight*parameter.BarrelScaling/2, b.Position().Y, 1e-9)
	assert.Len(t, b.Body().Parts()[0].Fragments(), parameter.BarrelFragments)
}

func TestBarrelNearest(t *testing.T) {
	f := newFixture()
	m := NewBarrelManager(f.deps)
	require.NoError(t, m.Spawn([]vmath.Vec3F{{X: 1}, {X: 3}}))

	b, ok := m.Nearest(vmath.Vec3F{X: 2.5}, parameter.PickupRadiusSq)
	require.True(t, ok)
	assert.InDelta(t, 3.0, b.Position().X, 1e-9)

	_, ok = m.Nearest(vmath.Vec3F{X: 20}, parameter.PickupRadiusSq)
	assert.False(t, ok)
}

func TestBarrelPickUp(t *testing.T) {
	f := newFixture()
	m := NewBarrelManager(f.deps)
	require.NoError(t, m.Spawn([]vmath.Vec3F{{X: 1}, {X: 4}}))
	holder := f.deps.Graph.NewGroup("player")
	holder.SetPosition(vmath.Vec3F{X: 10, Y: 1})

	barrels := m.Barrels()
	require.NoError(t, m.PickUp(barrels[0].ID(), holder))

	carried, ok := m.Carried()
	require.True(t, ok)
	assert.Equal(t, barrels[0], carried)
	assert.Equal(t, BarrelCarried, carried.State())
	assert.Equal(t, holder, carried.Root().Parent())
	assert.InDelta(t, 1+parameter.CarryHeight, carried.Position().Y, 1e-9)
	assert.InDelta(t, 10.0, carried.Position().X, 1e-9)

	assert.ErrorIs(t, m.PickUp(barrels[1].ID(), holder), ErrAlreadyHolding)
	assert.ErrorIs(t, m.PickUp(barrels[0].ID(), holder), ErrNotIdle)
	assert.ErrorIs(t, m.PickUp(99, holder), ErrUnknownObject)
	assert.ErrorIs(t, m.PickUp(barrels[1].ID(), nil), ErrNilHolder)

	// Shielded from shockwaves while held
	assert.Empty(t, m.Collide(carried.Position(), 1))
}

func TestBarrelThrowAndLand(t *testing.T) {
	f := newFixture()
	m := NewBarrelManager(f.deps)
	require.NoError(t, m.Spawn([]vmath.Vec3F{{}}))
	holder := f.deps.Graph.NewGroup("player")
	b := m.Barrels()[0]

	assert.ErrorIs(t, m.Throw(b.ID(), vmath.Vec3F{}), ErrNotCarried)
	require.NoError(t, m.PickUp(b.ID(), holder))
	require.NoError(t, m.Throw(b.ID(), vmath.Vec3F{X: 3, Y: 3}))

	assert.Equal(t, BarrelThrown, b.State())
	assert.Nil(t, b.Root().Parent())
	assert.Equal(t, 1, f.world.Len())

	var detonations []shockwave.Detonation
	m.OnDetonate(func(d shockwave.Detonation) { detonations = append(detonations, d) })

	for i := 0; i < 200 && b.State() == BarrelThrown; i++ {
		f.world.Step(16 * time.Millisecond)
		m.Update(16 * time.Millisecond)
	}
	require.Equal(t, BarrelExploded, b.State())
	require.Len(t, detonations, 1)
	assert.Greater(t, detonations[0].Position.X, 0.0)
	assert.False(t, detonations[0].IsRatio)
	assert.Len(t, f.emitter.bursts, 1)

	// Root body removed, fragments attached
	assert.Equal(t, parameter.BarrelFragments, f.world.Len())

	f.clock.Advance(parameter.ExplosionTTL + time.Millisecond)
	m.Update(0)
	_, ok := m.Get(b.ID())
	assert.False(t, ok)
	assert.Zero(t, f.world.Len())
	_, _, _, exploded := m.Counts()
	assert.Zero(t, exploded)
}

func TestBarrelProximityHit(t *testing.T) {
	f := newFixture()
	m := NewBarrelManager(f.deps)
	require.NoError(t, m.Spawn([]vmath.Vec3F{{}}))
	holder := f.deps.Graph.NewGroup("player")
	holder.SetPosition(vmath.Vec3F{Y: 10})
	b := m.Barrels()[0]
	require.NoError(t, m.PickUp(b.ID(), holder))
	require.NoError(t, m.Throw(b.ID(), vmath.Vec3F{X: 1, Y: 1}))

	m.Update(0)
	assert.Equal(t, BarrelThrown, b.State())

	m.SetProximity(stubProximity(true))
	m.Update(0)
	assert.Equal(t, BarrelExploded, b.State())
}

func TestBarrelExplodeTwice(t *testing.T) {
	f := newFixture()
	m := NewBarrelManager(f.deps)
	require.NoError(t, m.Spawn([]vmath.Vec3F{{}}))

	ids := m.Collide(vmath.Vec3F{}, 4)
	require.Len(t, ids, 1)

	_, err := m.Detonate(ids[0])
	require.NoError(t, err)
	_, err = m.Detonate(ids[0])
	assert.ErrorIs(t, err, destructible.ErrAlreadyExploded)
	_, err = m.Detonate(42)
	assert.ErrorIs(t, err, ErrUnknownObject)

	assert.Empty(t, m.Collide(vmath.Vec3F{}, 4))
}

func TestBarrelClear(t *testing.T) {
	f := newFixture()
	m := NewBarrelManager(f.deps)
	require.NoError(t, m.Spawn([]vmath.Vec3F{{}, {X: 5}}))
	m.Clear()
	assert.Empty(t, m.Barrels())
	assert.Zero(t, f.deps.Graph.Len())
}

func threeFifthsSet() ratio.Set {
	target := ratio.Ratio{Numerator: 3, Denominator: 5}
	return ratio.Set{
		Target:        target,
		Equivalent:    []ratio.Ratio{{Numerator: 6, Denominator: 10}, target},
		NonEquivalent: []ratio.Ratio{{Numerator: 12, Denominator: 7}},
	}
}

func ratioPositions() []vmath.Vec3F {
	return []vmath.Vec3F{{X: -10}, {X: 0, Y: 1}, {X: 10}}
}

func TestRatioSpawn(t *testing.T) {
	f := newFixture()
	m := NewRatioManager(f.deps)
	require.NoError(t, m.Spawn(threeFifthsSet(), ratioPositions()))

	ds := m.Displays()
	require.Len(t, ds, 3)
	assert.True(t, ds[0].Equivalent())
	assert.True(t, ds[1].Equivalent())
	assert.False(t, ds[2].Equivalent())
	assert.Equal(t, 2, m.Remaining(true))
	assert.Equal(t, 1, m.Remaining(false))
	assert.Equal(t, ratio.Ratio{Numerator: 3, Denominator: 5}, m.Target())

	// 6/10: one numerator digit, bar, two denominator digits
	d := ds[0]
	anchors := d.root.Children()
	require.Len(t, anchors, 4)
	assert.Equal(t, vmath.Vec3F{Y: parameter.NumeratorY}, anchors[0].Local().Position)
	assert.Equal(t, vmath.Vec3F{Y: parameter.BarY}, anchors[1].Local().Position)
	assert.InDelta(t, -parameter.DigitWidth/2, anchors[2].Local().Position.X, 1e-9)
	assert.InDelta(t, parameter.DigitWidth/2, anchors[3].Local().Position.X, 1e-9)

	bar := anchors[1].Children()[0]
	assert.Equal(t, scene.KindBar, bar.Kind())
	assert.Equal(t, 3.0, bar.Local().Scale.X)
	assert.Equal(t, '6', anchors[0].Children()[0].Glyph)
	assert.Equal(t, '1', anchors[2].Children()[0].Glyph)
	assert.Equal(t, '0', anchors[3].Children()[0].Glyph)
	assert.Len(t, d.Body().Parts(), 4)
}

func TestRatioSpawnTooFewPositions(t *testing.T) {
	f := newFixture()
	m := NewRatioManager(f.deps)
	err := m.Spawn(threeFifthsSet(), ratioPositions()[:2])
	assert.ErrorIs(t, err, ErrTooFewSlots)
}

func TestRatioSpin(t *testing.T) {
	f := newFixture()
	m := NewRatioManager(f.deps)
	require.NoError(t, m.Spawn(threeFifthsSet(), ratioPositions()))

	m.Update(time.Second)
	rot := m.Displays()[0].root.Local().Rotation
	assert.NotEqual(t, vmath.QuatIdentity, rot)
	// Rotation stays about Y
	assert.InDelta(t, 0.0, rot.X, 1e-9)
	assert.InDelta(t, 0.0, rot.Z, 1e-9)
}

func TestRatioCollideAndExplode(t *testing.T) {
	f := newFixture()
	m := NewRatioManager(f.deps)
	require.NoError(t, m.Spawn(threeFifthsSet(), ratioPositions()))

	ids := m.Collide(vmath.Vec3F{X: 0, Y: 1}, 1)
	require.Len(t, ids, 1)
	assert.True(t, m.AnyWithin(vmath.Vec3F{X: 0, Y: 1}, 1))

	det, err := m.Detonate(ids[0])
	require.NoError(t, err)
	assert.True(t, det.IsRatio)
	assert.Equal(t, ratio.Ratio{Numerator: 3, Denominator: 5}, det.Ratio)
	assert.Equal(t, vmath.Vec3F{Y: 1}, det.Position)
	assert.Len(t, f.emitter.bursts, 1)

	assert.Equal(t, 1, m.Remaining(true))
	assert.False(t, m.AnyWithin(vmath.Vec3F{X: 0, Y: 1}, 1))

	_, err = m.Explode(ids[0])
	assert.ErrorIs(t, err, destructible.ErrAlreadyExploded)

	m.Update(16 * time.Millisecond)
	live, exploded := m.Counts()
	assert.Equal(t, 2, live)
	assert.Equal(t, 1, exploded)

	f.clock.Advance(parameter.ExplosionTTL - time.Millisecond)
	m.Update(0)
	_, ok := m.Get(ids[0])
	assert.True(t, ok)

	f.clock.Advance(2 * time.Millisecond)
	m.Update(0)
	_, ok = m.Get(ids[0])
	assert.False(t, ok)
}

func TestRatioDrivesBarrelProximity(t *testing.T) {
	f := newFixture()
	ratios := NewRatioManager(f.deps)
	require.NoError(t, ratios.Spawn(threeFifthsSet(), ratioPositions()))
	barrels := NewBarrelManager(f.deps)
	barrels.SetProximity(ratios)

	require.NoError(t, barrels.Spawn([]vmath.Vec3F{{X: 30}}))
	holder := f.deps.Graph.NewGroup("player")
	// Carry height lands the barrel right at the middle display
	holder.SetPosition(vmath.Vec3F{Y: 1 - parameter.CarryHeight})
	b := barrels.Barrels()[0]
	require.NoError(t, barrels.PickUp(b.ID(), holder))
	require.NoError(t, barrels.Throw(b.ID(), vmath.Vec3F{}))

	barrels.Update(0)
	assert.Equal(t, BarrelExploded, b.State())
}
