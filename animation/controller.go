package animation

import (
	"time"

	"github.com/ericre997/RatioRage/parameter"
)

// Playback is the animation service the controller drives
// ClipEnded is polled; it stays true until the action is played again
type Playback interface {
	Play(a Action, loop bool, start, end float64)
	Stop(a Action)
	SetBlendWeight(a Action, w float64)
	Fraction(a Action) float64
	ClipEnded(a Action) bool
}

type request struct {
	action    Action
	onRelease func()
}

type fade struct {
	action Action
	weight float64
}

// Controller is one character's animation state
// Not safe for concurrent use
type Controller struct {
	playback    Playback
	defaultIdle Action

	current   Action
	weight    float64
	onRelease func()

	queued *request
	fading []fade
}

// NewController starts playback in Idle at full weight
func NewController(p Playback) *Controller {
	c := &Controller{playback: p, defaultIdle: Idle, current: Idle, weight: 1}
	clip := ClipFor(Idle)
	p.Play(Idle, clip.Loop, clip.Start, clip.End)
	p.SetBlendWeight(Idle, 1)
	return c
}

// Current returns the active action
func (c *Controller) Current() Action {
	return c.current
}

// Queued returns the action waiting for the current one-shot to finish
func (c *Controller) Queued() (Action, bool) {
	if c.queued == nil {
		return 0, false
	}
	return c.queued.action, true
}

// ReleasePending reports whether a release callback has yet to fire
func (c *Controller) ReleasePending() bool {
	if c.onRelease != nil {
		return true
	}
	return c.queued != nil && c.queued.onRelease != nil
}

// Request asks for action a; returns false when a is already active
func (c *Controller) Request(a Action) bool {
	return c.request(a, nil)
}

// Throw requests the throw action with a one-shot release callback
// Returns false when a throw is already playing
func (c *Controller) Throw(onRelease func()) bool {
	return c.request(Throw, onRelease)
}

func (c *Controller) request(a Action, onRelease func()) bool {
	if a == c.current {
		return false
	}
	if Looping(c.current) {
		c.transition(a, onRelease)
		return true
	}
	// Single slot, latest wins
	c.queued = &request{action: a, onRelease: onRelease}
	return true
}

// transition fades the current action out and starts a at its start offset
func (c *Controller) transition(a Action, onRelease func()) {
	if a != c.current {
		c.fading = append(c.fading, fade{action: c.current, weight: c.weight})
	}
	for i := 0; i < len(c.fading); i++ {
		if c.fading[i].action == a {
			c.fading = append(c.fading[:i], c.fading[i+1:]...)
			i--
		}
	}

	clip := ClipFor(a)
	c.playback.Play(a, clip.Loop, clip.Start, clip.End)
	c.playback.SetBlendWeight(a, 0)

	c.current = a
	c.weight = 0
	c.onRelease = onRelease
}

// Update polls playback once per frame: release point, clip end, then blending
func (c *Controller) Update(dt time.Duration) {
	if c.onRelease != nil {
		clip := ClipFor(c.current)
		if clip.Release > 0 && c.playback.Fraction(c.current) >= clip.Release {
			cb := c.onRelease
			c.onRelease = nil
			cb()
		}
	}

	if !Looping(c.current) && c.playback.ClipEnded(c.current) {
		next := request{action: c.defaultIdle}
		if c.queued != nil {
			next = *c.queued
			c.queued = nil
		}
		c.transition(next.action, next.onRelease)
	}

	c.blend(dt)
}

func (c *Controller) blend(dt time.Duration) {
	step := parameter.BlendRate * dt.Seconds()

	c.weight = min(1, c.weight+step)
	c.playback.SetBlendWeight(c.current, c.weight)

	kept := c.fading[:0]
	for _, f := range c.fading {
		f.weight -= step
		if f.weight <= 0 {
			c.playback.Stop(f.action)
			continue
		}
		c.playback.SetBlendWeight(f.action, f.weight)
		kept = append(kept, f)
	}
	c.fading = kept
}
