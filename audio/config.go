package audio

import (
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/vmath"
)

// Config controls audio output and per-effect volume
type Config struct {
	Enabled       bool
	SampleRate    int
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
}

// DefaultConfig returns audio settings with every effect at full relative volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioDefaultVolume,
		EffectVolumes: map[SoundType]float64{
			SoundExplosion: 1.0,
			SoundThrow:     0.6,
			SoundScore:     0.8,
			SoundLevelDone: 0.9,
		},
	}
}

// SetEffectVolumes overrides volumes by name; unknown names are returned
func (c *Config) SetEffectVolumes(byName map[string]float64) (unknown []string) {
	if c.EffectVolumes == nil {
		c.EffectVolumes = make(map[SoundType]float64)
	}
	for name, v := range byName {
		st, ok := ParseSoundType(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		c.EffectVolumes[st] = vmath.Clamp(v, 0, 1)
	}
	return unknown
}

// volume is the effective gain of st
func (c *Config) volume(st SoundType) float64 {
	v, ok := c.EffectVolumes[st]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}
