package animation

import (
	"time"

	"github.com/ericre997/RatioRage/parameter"
)

type track struct {
	loop       bool
	start, end float64
	duration   time.Duration
	fraction   float64
	weight     float64
	ended      bool
}

// ClipPlayer is a time-based Playback over authored clip durations
type ClipPlayer struct {
	durations map[Action]time.Duration
	tracks    map[Action]*track
}

// DefaultDurations are the rig's authored clip lengths
func DefaultDurations() map[Action]time.Duration {
	return map[Action]time.Duration{
		Idle:     parameter.ClipIdleDuration,
		IdleLook: parameter.ClipIdleLookDuration,
		Walk:     parameter.ClipWalkDuration,
		Run:      parameter.ClipRunDuration,
		Throw:    parameter.ClipThrowDuration,
		Punch:    parameter.ClipPunchDuration,
		Cheer:    parameter.ClipCheerDuration,
	}
}

// NewClipPlayer creates a player; missing durations default to one second
func NewClipPlayer(durations map[Action]time.Duration) *ClipPlayer {
	return &ClipPlayer{
		durations: durations,
		tracks:    make(map[Action]*track),
	}
}

func (p *ClipPlayer) Play(a Action, loop bool, start, end float64) {
	d, ok := p.durations[a]
	if !ok || d <= 0 {
		d = time.Second
	}
	p.tracks[a] = &track{loop: loop, start: start, end: end, duration: d, fraction: start}
}

func (p *ClipPlayer) Stop(a Action) {
	delete(p.tracks, a)
}

func (p *ClipPlayer) SetBlendWeight(a Action, w float64) {
	if t, ok := p.tracks[a]; ok {
		t.weight = w
	}
}

// Fraction is the playhead as a fraction of the authored clip
func (p *ClipPlayer) Fraction(a Action) float64 {
	if t, ok := p.tracks[a]; ok {
		return t.fraction
	}
	return 0
}

func (p *ClipPlayer) ClipEnded(a Action) bool {
	t, ok := p.tracks[a]
	return ok && t.ended
}

// Weight returns the current blend weight of a, zero if not playing
func (p *ClipPlayer) Weight(a Action) float64 {
	if t, ok := p.tracks[a]; ok {
		return t.weight
	}
	return 0
}

// Advance moves every playing track forward by dt
func (p *ClipPlayer) Advance(dt time.Duration) {
	for _, t := range p.tracks {
		if t.ended {
			continue
		}
		t.fraction += float64(dt) / float64(t.duration)
		if t.fraction < t.end {
			continue
		}
		if t.loop {
			span := t.end - t.start
			for span > 0 && t.fraction >= t.end {
				t.fraction -= span
			}
			continue
		}
		t.fraction = t.end
		t.ended = true
	}
}
