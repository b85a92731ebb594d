package system

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/animation"
	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/manager"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/physics"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/vmath"
)

var (
	ErrTargetTooLow   = errors.New("move target below minimum height")
	ErrNothingInReach = errors.New("no idle barrel within reach")
)

// PlayerSystem walks the player, handles pickup, throw and punch requests and
// picks the locomotion animation
type PlayerSystem struct {
	mesh    *scene.Mesh
	terrain core.Terrain
	barrels *manager.BarrelManager
	anim    *animation.Controller
	push    Pusher
	log     zerolog.Logger

	waypoint vmath.Vec3F
	moving   bool
}

// NewPlayerSystem places mesh on the terrain at spawn
func NewPlayerSystem(
	mesh *scene.Mesh,
	terrain core.Terrain,
	barrels *manager.BarrelManager,
	anim *animation.Controller,
	push Pusher,
	log zerolog.Logger,
) *PlayerSystem {
	s := &PlayerSystem{
		mesh:    mesh,
		terrain: terrain,
		barrels: barrels,
		anim:    anim,
		push:    push,
		log:     log.With().Str("component", "player").Logger(),
	}
	s.mesh.SetPosition(s.grounded(mesh.Local().Position))
	return s
}

func (s *PlayerSystem) Name() string  { return "player" }
func (s *PlayerSystem) Priority() int { return parameter.PriorityPlayer }

// EventTypes returns the event types PlayerSystem handles
func (s *PlayerSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMoveTo,
		event.EventPickUp,
		event.EventThrow,
		event.EventPunch,
		event.EventLevelComplete,
	}
}

// HandleEvent dispatches input requests
func (s *PlayerSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventMoveTo:
		if p, ok := ev.Payload.(*event.MoveToPayload); ok {
			if err := s.MoveTo(p.Target); err != nil {
				s.log.Debug().Err(err).Msg("Move ignored")
			}
		}
	case event.EventPickUp:
		if err := s.PickUp(); err != nil {
			s.log.Debug().Err(err).Msg("Pickup ignored")
		}
	case event.EventThrow:
		if p, ok := ev.Payload.(*event.ThrowPayload); ok {
			if err := s.Throw(p.Target); err != nil {
				s.log.Info().Err(err).Msg("Throw refused")
			}
		}
	case event.EventPunch:
		s.anim.Request(animation.Punch)
	case event.EventLevelComplete:
		s.moving = false
		s.anim.Request(animation.Cheer)
	}
}

// Position returns the player's world position
func (s *PlayerSystem) Position() vmath.Vec3F {
	return s.mesh.World().Position
}

// Moving reports whether a waypoint is pending
func (s *PlayerSystem) Moving() bool {
	return s.moving
}

// MoveTo sets a new waypoint
// Targets closer than MinMoveDistance are ignored without error
func (s *PlayerSystem) MoveTo(target vmath.Vec3F) error {
	pos := s.Position()
	if vmath.V3FDistSqXZ(pos, target) < parameter.MinMoveDistance*parameter.MinMoveDistance {
		return nil
	}
	if h := s.terrain.HeightAt(target.X, target.Z); h < parameter.MinPlayerHeight {
		return ErrTargetTooLow
	}
	s.waypoint = target
	s.moving = true
	return nil
}

// PickUp grabs the nearest idle barrel within reach
func (s *PlayerSystem) PickUp() error {
	if _, ok := s.barrels.Carried(); ok {
		return manager.ErrAlreadyHolding
	}
	b, ok := s.barrels.Nearest(s.Position(), parameter.PickupRadiusSq)
	if !ok {
		return ErrNothingInReach
	}
	if err := s.barrels.PickUp(b.ID(), s.mesh); err != nil {
		return err
	}
	s.log.Debug().Uint64("barrel", b.ID()).Msg("Barrel picked up")
	return nil
}

// Throw solves the launch toward target and starts the throw animation
// The barrel leaves the hand at the animation's release point
func (s *PlayerSystem) Throw(target vmath.Vec3F) error {
	b, ok := s.barrels.Carried()
	if !ok {
		return manager.ErrNotCarried
	}

	from := b.Position()
	to := vmath.Vec3F{X: target.X, Y: s.terrain.HeightAt(target.X, target.Z), Z: target.Z}
	vel, err := physics.LaunchVelocity(from, to, parameter.Gravity)
	if err != nil {
		return err
	}

	id := b.ID()
	started := s.anim.Throw(func() {
		if err := s.barrels.Throw(id, vel); err != nil {
			s.log.Error().Err(err).Uint64("barrel", id).Msg("Barrel release failed")
			return
		}
		s.push.Push(event.EventThrowReleased, &event.ThrowReleasedPayload{Position: from, Velocity: vel})
	})
	if started {
		s.moving = false
	}
	return nil
}

// Update steps toward the waypoint and selects Walk or Idle
// One-shot actions hold the player in place
func (s *PlayerSystem) Update(dt time.Duration) {
	if !animation.Looping(s.anim.Current()) {
		return
	}

	if s.moving {
		next, arrived := physics.MoveToward(s.Position(), s.waypoint, parameter.WalkSpeed, dt)
		s.mesh.SetPosition(s.grounded(next))
		if arrived {
			s.moving = false
		}
	}

	if s.moving {
		s.anim.Request(animation.Walk)
	} else if s.anim.Current() == animation.Walk {
		s.anim.Request(animation.Idle)
	}
}

// grounded keeps the player's feet on the terrain
func (s *PlayerSystem) grounded(p vmath.Vec3F) vmath.Vec3F {
	p.Y = s.terrain.HeightAt(p.X, p.Z) + parameter.PlayerSize/2
	return p
}
