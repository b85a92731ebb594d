package parameter

import "time"

// Audio output
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
	AudioDefaultVolume  = 0.6

	// AudioQueueSize bounds pending sound requests; extra requests drop
	AudioQueueSize = 32
)

// Synth envelopes
const (
	ExplosionDuration = 450 * time.Millisecond
	ThrowDuration     = 120 * time.Millisecond
	ScoreDuration     = 180 * time.Millisecond
	LevelDoneDuration = 600 * time.Millisecond
	ExplosionBaseFreq = 70.0
	ThrowBaseFreq     = 420.0
	ScoreBaseFreq     = 880.0
	LevelDoneBaseFreq = 523.25
)
