package physics

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/vmath"
)

var (
	ErrNilNode     = errors.New("physics: nil node")
	ErrBodyExists  = errors.New("physics: node already has a body")
	ErrInvalidMass = errors.New("physics: mass must be positive")
)

// Body is an impulse-driven sphere bound to a scene node
// Bodies drive the node's local transform; attach root-level nodes only
type Body struct {
	node        core.Node
	Mass        float64
	Friction    float64
	Restitution float64
	Velocity    vmath.Vec3F
	Angular     vmath.Vec3F
	Grounded    bool // Touched terrain during the last step
	Contacts    int
	Sleeping    bool
}

// World integrates bodies under gravity with terrain contact
// Single-threaded; stepped from the frame loop
type World struct {
	terrain core.Terrain
	gravity float64
	bodies  map[core.Node]*Body
	order   []core.Node
}

// NewWorld creates a world; a nil terrain disables ground contact
func NewWorld(terrain core.Terrain, gravity float64) *World {
	return &World{
		terrain: terrain,
		gravity: gravity,
		bodies:  make(map[core.Node]*Body),
	}
}

// AttachImpulseBody registers a body for node
func (w *World) AttachImpulseBody(node core.Node, mass, friction, restitution float64) error {
	if node == nil {
		return ErrNilNode
	}
	if mass <= 0 {
		return fmt.Errorf("%s: %w", node.Name(), ErrInvalidMass)
	}
	if _, ok := w.bodies[node]; ok {
		return fmt.Errorf("%s: %w", node.Name(), ErrBodyExists)
	}
	w.bodies[node] = &Body{
		node:        node,
		Mass:        mass,
		Friction:    vmath.Clamp(friction, 0, 1),
		Restitution: vmath.Clamp(restitution, 0, 1),
	}
	w.order = append(w.order, node)
	return nil
}

// SetLinearVelocity sets velocity and wakes the body; unknown nodes are ignored
func (w *World) SetLinearVelocity(node core.Node, v vmath.Vec3F) {
	if b, ok := w.bodies[node]; ok {
		b.Velocity = v
		b.Sleeping = false
	}
}

// SetAngularVelocity sets spin in rad/s; unknown nodes are ignored
func (w *World) SetAngularVelocity(node core.Node, av vmath.Vec3F) {
	if b, ok := w.bodies[node]; ok {
		b.Angular = av
		b.Sleeping = false
	}
}

// RemoveBody stops simulating node
func (w *World) RemoveBody(node core.Node) {
	if _, ok := w.bodies[node]; !ok {
		return
	}
	delete(w.bodies, node)
	w.order = slices.DeleteFunc(w.order, func(n core.Node) bool { return n == node })
}

// Body returns the body bound to node
func (w *World) Body(node core.Node) (*Body, bool) {
	b, ok := w.bodies[node]
	return b, ok
}

// Grounded reports terrain contact during the last step
func (w *World) Grounded(node core.Node) bool {
	b, ok := w.bodies[node]
	return ok && b.Grounded
}

// Len returns the number of bodies
func (w *World) Len() int {
	return len(w.order)
}

// Step integrates every awake body by dt (semi-implicit Euler)
func (w *World) Step(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}
	for _, n := range w.order {
		b := w.bodies[n]
		if b.Sleeping {
			continue
		}
		w.integrate(b, sec)
	}
}

func (w *World) integrate(b *Body, dt float64) {
	local := b.node.Local()

	b.Velocity.Y -= w.gravity * dt
	b.Velocity = vmath.V3FScale(b.Velocity, max(0, 1-parameter.LinearDamping*dt))
	pos := vmath.V3FAdd(local.Position, vmath.V3FScale(b.Velocity, dt))

	rot := vmath.QuatIntegrate(local.Rotation, b.Angular, dt)
	b.Angular = vmath.V3FScale(b.Angular, max(0, 1-parameter.AngularDamping*dt))

	b.Grounded = false
	if w.terrain != nil {
		ground := w.terrain.HeightAt(pos.X, pos.Z) + parameter.BodyRadius
		if pos.Y <= ground {
			pos.Y = ground
			b.Velocity = resolveContact(b, w.terrain.NormalAt(pos.X, pos.Z))
			b.Grounded = true
			b.Contacts++

			if vmath.V3FMagSq(b.Velocity) < parameter.SleepSpeedSq {
				b.Velocity = vmath.Vec3F{}
				b.Angular = vmath.Vec3F{}
				b.Sleeping = true
			}
		}
	}

	b.node.SetLocal(vmath.Transform{Scale: local.Scale, Rotation: rot, Position: pos})
}

// resolveContact bounces the normal component and damps the tangential one
func resolveContact(b *Body, normal vmath.Vec3F) vmath.Vec3F {
	vn := vmath.V3FDot(b.Velocity, normal)
	if vn >= 0 {
		return b.Velocity
	}
	normalPart := vmath.V3FScale(normal, vn)
	tangent := vmath.V3FSub(b.Velocity, normalPart)
	return vmath.V3FSub(
		vmath.V3FScale(tangent, 1-b.Friction),
		vmath.V3FScale(normalPart, b.Restitution),
	)
}
