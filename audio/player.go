package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/parameter"
)

// Player mixes one-shot effects into the speaker
// Play never blocks the frame loop: requests go through a bounded queue and
// are dropped when it is full
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	log         zerolog.Logger
	mixer       *beep.Mixer
	initialized bool

	queue   chan SoundType
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	muted   atomic.Bool

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates an uninitialized player
func NewPlayer(cfg *Config, log zerolog.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:   cfg,
		log:   log.With().Str("component", "audio").Logger(),
		mixer: &beep.Mixer{},
		queue: make(chan SoundType, parameter.AudioQueueSize),
		done:  make(chan struct{}),
	}
}

// Initialize opens the speaker and starts the request worker
// A disabled config is a no-op; a failed speaker leaves the player silent
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		p.log.Warn().Err(err).Msg("Speaker unavailable, audio disabled")
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.running.Store(true)

	p.wg.Add(1)
	core.Go(p.worker)

	p.log.Info().Int("sample_rate", p.cfg.SampleRate).Msg("Audio initialized")
	return nil
}

// Play queues st; returns false if the request was dropped
func (p *Player) Play(st SoundType) bool {
	if !p.running.Load() || p.muted.Load() {
		return false
	}
	select {
	case p.queue <- st:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports mute state
func (p *Player) IsMuted() bool {
	return p.muted.Load()
}

// IsRunning reports whether the speaker is open and the worker active
func (p *Player) IsRunning() bool {
	return p.running.Load()
}

// Played returns how many effects reached the mixer
func (p *Player) Played() uint64 {
	return p.played.Load()
}

// Dropped returns how many requests were discarded on a full queue
func (p *Player) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *Player) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case st := <-p.queue:
			p.mix(st)
		}
	}
}

func (p *Player) mix(st SoundType) {
	s := GetSoundEffect(st, p.cfg)
	if s == nil {
		p.log.Debug().Int("sound", int(st)).Msg("Unknown sound type")
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played.Add(1)
}

// Close stops the worker and clears the mixer
// Safe to call on an uninitialized or already closed player
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	p.running.Store(false)
	close(p.done)
	p.wg.Wait()

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	// The speaker stays open: the output context can be created once per process
	p.initialized = false
	p.log.Debug().Uint64("played", p.played.Load()).Uint64("dropped", p.dropped.Load()).Msg("Audio closed")
}
