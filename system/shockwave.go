package system

import (
	"time"

	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/shockwave"
)

// ShockwaveSystem sweeps live waves and reports every detonation as an event
type ShockwaveSystem struct {
	waves *shockwave.System
	push  Pusher
}

// NewShockwaveSystem installs the detonation listener on waves
func NewShockwaveSystem(waves *shockwave.System, push Pusher) *ShockwaveSystem {
	s := &ShockwaveSystem{waves: waves, push: push}
	waves.OnDetonation(s.detonated)
	return s
}

func (s *ShockwaveSystem) Name() string  { return "shockwave" }
func (s *ShockwaveSystem) Priority() int { return parameter.PriorityShockwave }

func (s *ShockwaveSystem) Update(time.Duration) {
	s.waves.Update()
}

func (s *ShockwaveSystem) detonated(c shockwave.Category, d shockwave.Detonation, scored bool) {
	switch c {
	case shockwave.CategoryBarrel:
		s.push.Push(event.EventBarrelExploded, &event.ExplosionPayload{Position: d.Position, Chained: true})
	case shockwave.CategoryRatio:
		s.push.Push(event.EventRatioExploded, &event.RatioExplodedPayload{
			Position:   d.Position,
			Ratio:      d.Ratio,
			Equivalent: scored,
		})
	}
}
