// Package status holds lock-free gameplay counters shared between the frame
// loop, the HUD and the telemetry exporter
package status

import "sync/atomic"

// Well-known keys
const (
	KeyFrame           = "engine.frame"
	KeyFrameTimeMs     = "engine.frame_ms"
	KeyEventsDropped   = "engine.events_dropped"
	KeyScore           = "game.score"
	KeyRemaining       = "game.remaining"
	KeyTarget          = "game.target"
	KeyPaused          = "game.paused"
	KeyLevelComplete   = "game.level_complete"
	KeyShockwaveActive = "shockwave.active"
	KeyShockwaveTotal  = "shockwave.total"
	KeyBarrelIdle      = "barrel.idle"
	KeyBarrelThrown    = "barrel.thrown"
	KeyBarrelExploded  = "barrel.exploded"
	KeyRatioLive       = "ratio.live"
	KeyRatioExploded   = "ratio.exploded"
	KeyBodies          = "physics.bodies"
	KeyParticles       = "particle.live"
	KeyMeshes          = "scene.meshes"
	KeyAnimation       = "player.animation"
)

// Registry is the central metrics facade
// Systems cache pointers during construction; Update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Int is shorthand for Ints.Get
func (r *Registry) Int(key string) *atomic.Int64 {
	return r.Ints.Get(key)
}

// Snapshot copies every numeric metric; bools read as 0/1
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Ints.Count()+r.Floats.Count()+r.Bools.Count())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = float64(v.Load())
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out[k] = v.Get()
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		if v.Load() {
			out[k] = 1
		} else {
			out[k] = 0
		}
	})
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
