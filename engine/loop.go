package engine

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/parameter"
	"github.com/ericre997/RatioRage/status"
)

// Loop runs systems in priority order once per frame on a single goroutine
// Events pushed from other goroutines are consumed at frame start
type Loop struct {
	clock  *PausableClock
	queue  *event.Queue
	router *event.Router
	log    zerolog.Logger

	systems []System
	last    time.Time
	frame   atomic.Int64

	statFrame   *atomic.Int64
	statFrameMs *status.AtomicFloat
	statDropped *atomic.Int64
	statPaused  *atomic.Bool
}

// NewLoop wires the loop to its clock, queue and metrics
func NewLoop(clock *PausableClock, queue *event.Queue, reg *status.Registry, log zerolog.Logger) *Loop {
	l := &Loop{
		clock:       clock,
		queue:       queue,
		router:      event.NewRouter(queue),
		log:         log.With().Str("component", "loop").Logger(),
		last:        clock.Now(),
		statFrame:   reg.Int(status.KeyFrame),
		statFrameMs: reg.Floats.Get(status.KeyFrameTimeMs),
		statDropped: reg.Int(status.KeyEventsDropped),
		statPaused:  reg.Bools.Get(status.KeyPaused),
	}
	l.router.Register(pauseToggle{l})
	return l
}

// pauseToggle flips the game clock on EventPauseToggle
type pauseToggle struct{ l *Loop }

func (pauseToggle) EventTypes() []event.EventType {
	return []event.EventType{event.EventPauseToggle}
}

func (p pauseToggle) HandleEvent(event.GameEvent) {
	paused := p.l.clock.Toggle()
	p.l.log.Info().Bool("paused", paused).Msg("Pause toggled")
}

// AddSystem inserts s by priority; event handlers are registered with the router
// Equal priorities keep insertion order
func (l *Loop) AddSystem(s System) {
	idx, _ := slices.BinarySearchFunc(l.systems, s.Priority(), func(e System, p int) int {
		if e.Priority() <= p {
			return -1
		}
		return 1
	})
	l.systems = slices.Insert(l.systems, idx, s)

	if h, ok := s.(event.Handler); ok {
		l.router.Register(h)
	}
	l.log.Debug().Str("system", s.Name()).Int("priority", s.Priority()).Msg("System registered")
}

// AddHandler registers a non-system event handler
func (l *Loop) AddHandler(h event.Handler) {
	l.router.Register(h)
}

// Systems returns systems in execution order
func (l *Loop) Systems() []System {
	return slices.Clone(l.systems)
}

// Push emits an event stamped with the current frame
func (l *Loop) Push(t event.EventType, payload any) {
	l.queue.Push(event.GameEvent{Type: t, Payload: payload, Frame: l.frame.Load()})
}

// Frame returns the number of completed frames
func (l *Loop) Frame() int64 {
	return l.frame.Load()
}

// Clock returns the game clock
func (l *Loop) Clock() *PausableClock {
	return l.clock
}

// Tick runs one frame: dispatch pending events, update systems, dispatch
// events raised during the update
// While paused only events are dispatched
func (l *Loop) Tick() {
	start := l.clock.RealTime()
	l.router.DispatchAll()

	now := l.clock.Now()
	dt := now.Sub(l.last)
	l.last = now
	dt = min(max(dt, 0), parameter.MaxFrameDelta)

	paused := l.clock.IsPaused()
	if !paused {
		for _, s := range l.systems {
			s.Update(dt)
		}
	}
	l.router.DispatchAll()

	n := l.frame.Add(1)
	l.statFrame.Store(n)
	l.statFrameMs.Set(float64(l.clock.RealTime().Sub(start).Microseconds()) / 1000)
	l.statDropped.Store(int64(l.queue.Dropped()))
	l.statPaused.Store(paused)
}

// Run ticks every interval until ctx is cancelled; afterFrame runs after each tick
func (l *Loop) Run(ctx context.Context, interval time.Duration, afterFrame func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
			if afterFrame != nil {
				afterFrame()
			}
		}
	}
}
