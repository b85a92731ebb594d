package audio

import "errors"

// SoundType represents different sound effects
type SoundType int

const (
	SoundExplosion SoundType = iota // Barrel or ratio blast
	SoundThrow                      // Barrel leaves the hand
	SoundScore                      // Equivalent ratio destroyed
	SoundLevelDone                  // Every target destroyed
	soundTypeCount
)

var soundNames = [...]string{"explosion", "throw", "score", "level_done"}

func (s SoundType) String() string {
	if s >= 0 && s < soundTypeCount {
		return soundNames[s]
	}
	return "unknown"
}

// ParseSoundType maps a config key back to its SoundType
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// Sentinel errors
var (
	ErrNotInitialized = errors.New("audio output not initialized")
	ErrClosed         = errors.New("audio player closed")
)
