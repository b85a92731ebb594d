package system

import (
	"time"

	"github.com/ericre997/RatioRage/audio"
	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/parameter"
)

// SoundPlayer queues a sound effect; *audio.Player satisfies it
type SoundPlayer interface {
	Play(st audio.SoundType) bool
}

// AudioSystem maps gameplay events to sound effects
// Decouples game systems from direct Player access
type AudioSystem struct {
	player SoundPlayer
}

// NewAudioSystem creates an audio system; player may be nil if audio is disabled
func NewAudioSystem(player SoundPlayer) *AudioSystem {
	return &AudioSystem{player: player}
}

func (s *AudioSystem) Name() string  { return "audio" }
func (s *AudioSystem) Priority() int { return parameter.PriorityAudio }

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventThrowReleased,
		event.EventBarrelExploded,
		event.EventRatioExploded,
		event.EventScoreChanged,
		event.EventLevelComplete,
	}
}

// HandleEvent plays the sound for ev
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if s.player == nil {
		return
	}
	switch ev.Type {
	case event.EventThrowReleased:
		s.player.Play(audio.SoundThrow)
	case event.EventBarrelExploded, event.EventRatioExploded:
		s.player.Play(audio.SoundExplosion)
	case event.EventScoreChanged:
		s.player.Play(audio.SoundScore)
	case event.EventLevelComplete:
		s.player.Play(audio.SoundLevelDone)
	}
}

// Update implements System interface (no tick-based logic)
func (s *AudioSystem) Update(time.Duration) {}
