package system

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/manager"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/shockwave"
)

// BarrelSystem resolves thrown barrel contact and disposes expired debris
// A barrel exploding on impact starts a shockwave at its position
type BarrelSystem struct {
	barrels *manager.BarrelManager
	waves   *shockwave.System
	push    Pusher
	log     zerolog.Logger
}

// NewBarrelSystem installs the impact handler on barrels
func NewBarrelSystem(barrels *manager.BarrelManager, waves *shockwave.System, push Pusher, log zerolog.Logger) *BarrelSystem {
	s := &BarrelSystem{
		barrels: barrels,
		waves:   waves,
		push:    push,
		log:     log.With().Str("component", "barrel").Logger(),
	}
	barrels.OnDetonate(s.impact)
	return s
}

func (s *BarrelSystem) Name() string  { return "barrel" }
func (s *BarrelSystem) Priority() int { return parameter.PriorityBarrel }

func (s *BarrelSystem) Update(dt time.Duration) {
	s.barrels.Update(dt)
}

func (s *BarrelSystem) impact(d shockwave.Detonation) {
	s.waves.Create(d.Position)
	s.push.Push(event.EventBarrelExploded, &event.ExplosionPayload{Position: d.Position})
	s.log.Debug().
		Float64("x", d.Position.X).
		Float64("y", d.Position.Y).
		Float64("z", d.Position.Z).
		Msg("Barrel impact")
}
