package system

import (
	"time"

	"github.com/ericre997/RatioRage/animation"
	"github.com/ericre997/RatioRage/manager"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/particle"
	"github.com/ericre997/RatioRage/physics"
)

// AnimationSystem advances clip playback then polls the controller
type AnimationSystem struct {
	clips *animation.ClipPlayer
	ctrl  *animation.Controller
}

func NewAnimationSystem(clips *animation.ClipPlayer, ctrl *animation.Controller) *AnimationSystem {
	return &AnimationSystem{clips: clips, ctrl: ctrl}
}

func (s *AnimationSystem) Name() string  { return "animation" }
func (s *AnimationSystem) Priority() int { return parameter.PriorityAnimation }

func (s *AnimationSystem) Update(dt time.Duration) {
	s.clips.Advance(dt)
	s.ctrl.Update(dt)
}

// PhysicsSystem steps the rigid-body world
type PhysicsSystem struct {
	world *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (s *PhysicsSystem) Name() string  { return "physics" }
func (s *PhysicsSystem) Priority() int { return parameter.PriorityPhysics }

func (s *PhysicsSystem) Update(dt time.Duration) {
	s.world.Step(dt)
}

// RatioSystem spins live ratios and disposes expired debris
type RatioSystem struct {
	ratios *manager.RatioManager
}

func NewRatioSystem(ratios *manager.RatioManager) *RatioSystem {
	return &RatioSystem{ratios: ratios}
}

func (s *RatioSystem) Name() string  { return "ratio" }
func (s *RatioSystem) Priority() int { return parameter.PriorityRatio }

func (s *RatioSystem) Update(dt time.Duration) {
	s.ratios.Update(dt)
}

// ParticleSystem ages explosion particles
type ParticleSystem struct {
	particles *particle.System
}

func NewParticleSystem(particles *particle.System) *ParticleSystem {
	return &ParticleSystem{particles: particles}
}

func (s *ParticleSystem) Name() string  { return "particle" }
func (s *ParticleSystem) Priority() int { return parameter.PriorityParticle }

func (s *ParticleSystem) Update(dt time.Duration) {
	s.particles.Update(dt)
}
