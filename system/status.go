package system

import (
	"sync/atomic"
	"time"

	"github.com/ericre997/RatioRage/animation"
	"github.com/ericre997/RatioRage/manager"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/particle"
	"github.com/ericre997/RatioRage/physics"
	"github.com/ericre997/RatioRage/scene"
	"github.com/ericre997/RatioRage/shockwave"
	"github.com/ericre997/RatioRage/status"
)

// StatusSources are the components whose sizes are published each frame
type StatusSources struct {
	Waves     *shockwave.System
	Barrels   *manager.BarrelManager
	Ratios    *manager.RatioManager
	World     *physics.World
	Particles *particle.System
	Graph     *scene.Graph
	Anim      *animation.Controller
}

// StatusSystem copies component counters into the registry
// Runs last so the HUD sees the frame's final state
type StatusSystem struct {
	src StatusSources

	waveActive    *atomic.Int64
	waveTotal     *atomic.Int64
	barrelIdle    *atomic.Int64
	barrelThrown  *atomic.Int64
	barrelBlasted *atomic.Int64
	ratioLive     *atomic.Int64
	ratioBlasted  *atomic.Int64
	bodies        *atomic.Int64
	particles     *atomic.Int64
	meshes        *atomic.Int64
	anim          *status.AtomicString
}

func NewStatusSystem(src StatusSources, reg *status.Registry) *StatusSystem {
	return &StatusSystem{
		src:           src,
		waveActive:    reg.Int(status.KeyShockwaveActive),
		waveTotal:     reg.Int(status.KeyShockwaveTotal),
		barrelIdle:    reg.Int(status.KeyBarrelIdle),
		barrelThrown:  reg.Int(status.KeyBarrelThrown),
		barrelBlasted: reg.Int(status.KeyBarrelExploded),
		ratioLive:     reg.Int(status.KeyRatioLive),
		ratioBlasted:  reg.Int(status.KeyRatioExploded),
		bodies:        reg.Int(status.KeyBodies),
		particles:     reg.Int(status.KeyParticles),
		meshes:        reg.Int(status.KeyMeshes),
		anim:          reg.Strings.Get(status.KeyAnimation),
	}
}

func (s *StatusSystem) Name() string  { return "status" }
func (s *StatusSystem) Priority() int { return parameter.PriorityStatus }

func (s *StatusSystem) Update(time.Duration) {
	if w := s.src.Waves; w != nil {
		s.waveActive.Store(int64(w.Active()))
		s.waveTotal.Store(w.Created())
	}
	if b := s.src.Barrels; b != nil {
		idle, _, thrown, exploded := b.Counts()
		s.barrelIdle.Store(int64(idle))
		s.barrelThrown.Store(int64(thrown))
		s.barrelBlasted.Store(int64(exploded))
	}
	if r := s.src.Ratios; r != nil {
		live, exploded := r.Counts()
		s.ratioLive.Store(int64(live))
		s.ratioBlasted.Store(int64(exploded))
	}
	if w := s.src.World; w != nil {
		s.bodies.Store(int64(w.Len()))
	}
	if p := s.src.Particles; p != nil {
		s.particles.Store(int64(p.Len()))
	}
	if g := s.src.Graph; g != nil {
		s.meshes.Store(int64(g.Len()))
	}
	if a := s.src.Anim; a != nil {
		s.anim.Store(a.Current().String())
	}
}
