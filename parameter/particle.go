package parameter

import "time"

// Explosion particle burst
const (
	ParticleBurstCount = 32
	ParticleLifetime   = 900 * time.Millisecond
	ParticleSpeedMin   = 2.0
	ParticleSpeedMax   = 7.0
	ParticleMaxLive    = 1024
)
