package particle

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/vmath"
)

// Particle is one short-lived spark
type Particle struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Age      time.Duration
	Life     time.Duration
}

// Fade returns remaining life in [0,1]
func (p *Particle) Fade() float64 {
	if p.Life <= 0 {
		return 0
	}
	return vmath.Clamp(1-float64(p.Age)/float64(p.Life), 0, 1)
}

// System owns a bounded pool of live particles
// Written by the particle pass, read by the renderer on the same goroutine
type System struct {
	rng     *rand.Rand
	gravity float64
	backing []Particle
	live    int
	// Bursts counts Burst calls, Dropped counts spawns rejected at capacity
	Bursts  int
	Dropped int
}

func NewSystem(rng *rand.Rand, capacity int) *System {
	if capacity <= 0 {
		capacity = parameter.ParticleMaxLive
	}
	return &System{
		rng:     rng,
		gravity: parameter.Gravity,
		backing: make([]Particle, capacity),
	}
}

// Burst spawns a spherical spray of sparks at pos
func (s *System) Burst(pos vmath.Vec3F) {
	s.Bursts++
	for range parameter.ParticleBurstCount {
		if s.live == len(s.backing) {
			s.Dropped++
			continue
		}
		// Uniform direction on the upper hemisphere
		theta := s.rng.Float64() * 2 * math.Pi
		y := s.rng.Float64()
		r := math.Sqrt(1 - y*y)
		dir := vmath.Vec3F{X: r * math.Cos(theta), Y: y, Z: r * math.Sin(theta)}
		speed := parameter.ParticleSpeedMin + s.rng.Float64()*(parameter.ParticleSpeedMax-parameter.ParticleSpeedMin)
		life := time.Duration(float64(parameter.ParticleLifetime) * (0.5 + 0.5*s.rng.Float64()))

		s.backing[s.live] = Particle{
			Position: pos,
			Velocity: vmath.V3FScale(dir, speed),
			Life:     life,
		}
		s.live++
	}
}

// Update ages and moves particles, compacting expired ones out of the live range
func (s *System) Update(dt time.Duration) {
	sec := dt.Seconds()
	i := 0
	for i < s.live {
		p := &s.backing[i]
		p.Age += dt
		if p.Age >= p.Life {
			s.live--
			s.backing[i] = s.backing[s.live]
			continue
		}
		p.Velocity.Y -= s.gravity * sec
		p.Position = vmath.V3FAdd(p.Position, vmath.V3FScale(p.Velocity, sec))
		i++
	}
}

// Live returns a view of active particles, valid until the next Burst or Update
func (s *System) Live() []Particle {
	return s.backing[:s.live]
}

func (s *System) Len() int { return s.live }

// Clear drops all particles
func (s *System) Clear() {
	s.live = 0
}
