package system

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/engine"
	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/manager"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/status"
)

// LevelSystem announces completion once no equivalent ratio remains
type LevelSystem struct {
	ratios *manager.RatioManager
	clock  *engine.PausableClock
	score  *ScoreBoard
	push   Pusher
	log    zerolog.Logger

	started  bool
	complete bool

	statRemaining *atomic.Int64
	statComplete  *atomic.Bool
}

func NewLevelSystem(
	ratios *manager.RatioManager,
	clock *engine.PausableClock,
	score *ScoreBoard,
	push Pusher,
	reg *status.Registry,
	log zerolog.Logger,
) *LevelSystem {
	return &LevelSystem{
		ratios:        ratios,
		clock:         clock,
		score:         score,
		push:          push,
		log:           log.With().Str("component", "level").Logger(),
		statRemaining: reg.Int(status.KeyRemaining),
		statComplete:  reg.Bools.Get(status.KeyLevelComplete),
	}
}

func (s *LevelSystem) Name() string  { return "level" }
func (s *LevelSystem) Priority() int { return parameter.PriorityLevel }

// EventTypes returns the event types LevelSystem handles
func (s *LevelSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventLevelStart}
}

// HandleEvent arms the completion check
func (s *LevelSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventLevelStart {
		s.started = true
		s.complete = false
		s.statComplete.Store(false)
	}
}

// Complete reports whether the level has been won
func (s *LevelSystem) Complete() bool {
	return s.complete
}

func (s *LevelSystem) Update(time.Duration) {
	remaining := s.ratios.Remaining(true)
	s.statRemaining.Store(int64(remaining))

	if !s.started || s.complete || remaining > 0 {
		return
	}
	s.complete = true
	s.statComplete.Store(true)

	elapsed := s.clock.Elapsed()
	s.push.Push(event.EventLevelComplete, &event.LevelCompletePayload{Elapsed: elapsed, Score: s.score.Total()})
	s.log.Info().Dur("elapsed", elapsed).Int("score", s.score.Total()).Msg("Level complete")
}
