// Package destructible switches entities from an intact solid form to
// simulated fragments and tracks debris lifetime
package destructible

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/vmath"
)

var (
	ErrAlreadyExploded = errors.New("object already exploded")
	ErrAlreadyDisposed = errors.New("object already disposed")
	ErrNoSolids        = errors.New("object needs at least one solid piece")
)

// Simulation is the rigid-body service fragments are handed to
type Simulation interface {
	AttachImpulseBody(node core.Node, mass, friction, restitution float64) error
	SetLinearVelocity(node core.Node, v vmath.Vec3F)
	SetAngularVelocity(node core.Node, w vmath.Vec3F)
	RemoveBody(node core.Node)
}

// Emitter fires a one-shot particle burst
type Emitter interface {
	Burst(pos vmath.Vec3F)
}

// Spec describes one destructible's pieces
type Spec struct {
	Root      core.Node // Optional; solids are parented to it
	Solids    []core.Node
	Fragments []core.Node
	TTL       time.Duration
}

// Object is one destructible entity
// Solids are visible only before Explode; fragments are simulated only after
type Object struct {
	root      core.Node
	solids    []core.Node
	fragments []core.Node
	ttl       time.Duration

	clock core.Clock
	rng   *rand.Rand
	sim   Simulation

	exploded   bool
	explodedAt time.Time
	disposed   bool
}

// New attaches solids to the root and hides fragments under the first solid
func New(spec Spec, clock core.Clock, rng *rand.Rand) (*Object, error) {
	if len(spec.Solids) == 0 {
		return nil, ErrNoSolids
	}

	o := &Object{
		root:      spec.Root,
		solids:    spec.Solids,
		fragments: spec.Fragments,
		ttl:       spec.TTL,
		clock:     clock,
		rng:       rng,
	}

	for _, s := range o.solids {
		if o.root != nil {
			s.SetParent(o.root)
		}
		s.SetVisible(true)
	}
	for _, f := range o.fragments {
		f.SetParent(o.solids[0])
		f.SetLocal(vmath.IdentityTransform)
		f.SetVisible(false)
	}
	return o, nil
}

// Explode hands fragments to sim at the solid's world transform and hides the solids
// Body attach failures are reported after the transition completes
func (o *Object) Explode(sim Simulation) error {
	if o.disposed {
		return ErrAlreadyDisposed
	}
	if o.exploded {
		return ErrAlreadyExploded
	}

	world := o.solids[0].World()

	var errs []error
	for _, f := range o.fragments {
		f.SetParent(nil)
		f.SetLocal(world)
		f.SetVisible(true)

		if err := sim.AttachImpulseBody(f, parameter.FragmentMass, parameter.FragmentFriction, parameter.FragmentRestitution); err != nil {
			errs = append(errs, fmt.Errorf("fragment %s: %w", f.Name(), err))
			continue
		}
		sim.SetLinearVelocity(f, o.launchVelocity())
		sim.SetAngularVelocity(f, o.spin())
	}

	for _, s := range o.solids {
		s.SetVisible(false)
	}

	o.sim = sim
	o.exploded = true
	o.explodedAt = o.clock.Now()
	return errors.Join(errs...)
}

// launchVelocity is an upward-biased random direction scaled per axis
func (o *Object) launchVelocity() vmath.Vec3F {
	dir := vmath.V3FNormalize(vmath.Vec3F{
		X: o.rng.Float64() - 0.5,
		Y: parameter.FragmentUpBias,
		Z: o.rng.Float64() - 0.5,
	})
	speed := vmath.Vec3F{
		X: parameter.FragmentSpeedXZBase + parameter.FragmentSpeedXZSpread*o.rng.Float64(),
		Y: parameter.FragmentSpeedYBase + parameter.FragmentSpeedYSpread*o.rng.Float64(),
		Z: parameter.FragmentSpeedXZBase + parameter.FragmentSpeedXZSpread*o.rng.Float64(),
	}
	return vmath.V3FMul(dir, speed)
}

func (o *Object) spin() vmath.Vec3F {
	r := parameter.FragmentAngularRange
	return vmath.Vec3F{
		X: r * (o.rng.Float64() - 0.5),
		Y: r * (o.rng.Float64() - 0.5),
		Z: r * (o.rng.Float64() - 0.5),
	}
}

// ShouldDispose is true once strictly more than TTL has passed since Explode
func (o *Object) ShouldDispose() bool {
	return o.exploded && !o.disposed && o.clock.Now().After(o.explodedAt.Add(o.ttl))
}

// Dispose releases every piece and its body
// TTL eligibility is the caller's check
func (o *Object) Dispose() error {
	if o.disposed {
		return ErrAlreadyDisposed
	}
	for _, f := range o.fragments {
		if o.sim != nil {
			o.sim.RemoveBody(f)
		}
		f.Dispose()
	}
	for _, s := range o.solids {
		s.Dispose()
	}
	o.disposed = true
	return nil
}

func (o *Object) IsExploded() bool       { return o.exploded }
func (o *Object) IsDisposed() bool       { return o.disposed }
func (o *Object) ExplodedAt() time.Time  { return o.explodedAt }
func (o *Object) TTL() time.Duration     { return o.ttl }
func (o *Object) Solids() []core.Node    { return o.solids }
func (o *Object) Fragments() []core.Node { return o.fragments }

// Position is the solid's world position while intact, the fragment centroid after
func (o *Object) Position() vmath.Vec3F {
	if !o.exploded || len(o.fragments) == 0 {
		return o.solids[0].World().Position
	}
	var sum vmath.Vec3F
	for _, f := range o.fragments {
		sum = vmath.V3FAdd(sum, f.World().Position)
	}
	return vmath.V3FScale(sum, 1/float64(len(o.fragments)))
}
