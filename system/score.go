package system

import (
	"sync/atomic"

	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/ratio"
	"github.com/ericre997/RatioRage/status"
)

// ScoreBoard is the shockwave score sink; it publishes totals to the HUD
type ScoreBoard struct {
	push   Pusher
	total  int
	target ratio.Ratio

	statScore  *atomic.Int64
	statTarget *status.AtomicString
}

func NewScoreBoard(push Pusher, reg *status.Registry) *ScoreBoard {
	return &ScoreBoard{
		push:       push,
		statScore:  reg.Int(status.KeyScore),
		statTarget: reg.Strings.Get(status.KeyTarget),
	}
}

// AddScore adds n points and announces the new total
func (b *ScoreBoard) AddScore(n int) {
	b.total += n
	b.statScore.Store(int64(b.total))
	b.push.Push(event.EventScoreChanged, &event.ScorePayload{Delta: n, Total: b.total})
}

// SetTarget records the ratio shown in the HUD
func (b *ScoreBoard) SetTarget(r ratio.Ratio) {
	b.target = r
	b.statTarget.Store(r.String())
}

func (b *ScoreBoard) Total() int          { return b.total }
func (b *ScoreBoard) Target() ratio.Ratio { return b.target }

// EventTypes returns the event types ScoreBoard handles
func (b *ScoreBoard) EventTypes() []event.EventType {
	return []event.EventType{event.EventLevelStart}
}

// HandleEvent resets the total for a new level
func (b *ScoreBoard) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventLevelStart {
		return
	}
	b.total = 0
	b.statScore.Store(0)
	if p, ok := ev.Payload.(*event.LevelStartPayload); ok {
		b.SetTarget(p.Target)
	}
}
