package shockwave

import (
	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/ratio"
	"github.com/ericre997/RatioRage/vmath"
)

// Category names a registered target collection
type Category string

const (
	CategoryBarrel Category = "barrel"
	CategoryRatio  Category = "ratio"
)

// Detonation describes an object a shockwave just exploded
type Detonation struct {
	Position vmath.Vec3F
	Ratio    ratio.Ratio
	IsRatio  bool
}

// Target is a collection the sweep may explode objects from
// Implementations own their collections; the sweep acts only through this interface
type Target interface {
	Category() Category
	// Collide returns ids of live objects within squared 3D distance r2 of pos
	Collide(pos vmath.Vec3F, r2 float64) []uint64
	// Detonate explodes the object with id
	Detonate(id uint64) (Detonation, error)
}

// ScoreSink receives score increments and target updates; push-only
type ScoreSink interface {
	AddScore(n int)
	SetTarget(r ratio.Ratio)
}

// Listener observes every detonation the sweep causes
type Listener func(c Category, d Detonation, scored bool)

// System owns active shockwaves
// Not safe for concurrent use
type System struct {
	clock    core.Clock
	score    ScoreSink
	log      zerolog.Logger
	targets  []Target
	target   ratio.Ratio
	waves    []Shockwave
	created  int64
	listener Listener
}

// NewSystem creates an empty system
func NewSystem(clock core.Clock, score ScoreSink, log zerolog.Logger) *System {
	return &System{
		clock: clock,
		score: score,
		log:   log.With().Str("component", "shockwave").Logger(),
	}
}

// Register adds a target category to the sweep
func (s *System) Register(t Target) {
	s.targets = append(s.targets, t)
}

// SetTarget sets the ratio that scores and forwards it to the sink
func (s *System) SetTarget(r ratio.Ratio) {
	s.target = r
	if s.score != nil {
		s.score.SetTarget(r)
	}
}

// OnDetonation installs the detonation listener
func (s *System) OnDetonation(fn Listener) {
	s.listener = fn
}

// Create starts a shockwave just above pos
func (s *System) Create(pos vmath.Vec3F) {
	s.waves = append(s.waves, Shockwave{
		Position:    vmath.V3FAdd(pos, vmath.Vec3F{Y: parameter.ShockwaveYOffset}),
		StartRadius: parameter.ShockwaveStartRadius,
		MaxRadius:   parameter.ShockwaveMaxRadius,
		Duration:    parameter.ShockwaveDuration,
		StartTime:   s.clock.Now(),
	})
	s.created++
}

// Active returns the number of live shockwaves
func (s *System) Active() int {
	return len(s.waves)
}

// Created returns the total shockwaves ever created
func (s *System) Created() int64 {
	return s.created
}

// Waves returns a copy of the live shockwaves
func (s *System) Waves() []Shockwave {
	out := make([]Shockwave, len(s.waves))
	copy(out, s.waves)
	return out
}

// Update sweeps every live shockwave once
// Waves chained during this call are swept in the same call
func (s *System) Update() {
	now := s.clock.Now()
	alive := make([]bool, 0, len(s.waves))

	for i := 0; i < len(s.waves); i++ {
		w := s.waves[i]
		r, ok := w.Radius(now)
		alive = append(alive, ok)
		if !ok {
			continue
		}

		r2 := r * r
		for _, t := range s.targets {
			for _, id := range t.Collide(w.Position, r2) {
				s.detonate(t, id)
			}
		}
	}

	kept := s.waves[:0]
	for i, w := range s.waves {
		if alive[i] {
			kept = append(kept, w)
		}
	}
	clear(s.waves[len(kept):])
	s.waves = kept
}

func (s *System) detonate(t Target, id uint64) {
	d, err := t.Detonate(id)
	if err != nil {
		s.log.Error().Err(err).Str("category", string(t.Category())).Uint64("id", id).Msg("Detonation failed")
		return
	}

	s.Create(d.Position)

	scored := d.IsRatio && ratio.Equivalent(d.Ratio, s.target)
	if scored && s.score != nil {
		s.score.AddScore(parameter.ScorePerEquivalentRatio)
	}
	if s.listener != nil {
		s.listener(t.Category(), d, scored)
	}
}

// Clear drops every wave
func (s *System) Clear() {
	s.waves = s.waves[:0]
}
