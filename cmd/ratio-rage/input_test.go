package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/render"
)

type pushed struct {
	t       event.EventType
	payload any
}

type pushLog []pushed

func (p *pushLog) Push(t event.EventType, payload any) {
	*p = append(*p, pushed{t, payload})
}

var testView = render.View{Width: 60, Height: 10, Top: 1, CellsPerUnit: 1, Aspect: 0.5}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestControlsKeys(t *testing.T) {
	var log pushLog
	muted := 0
	c := &controls{push: &log, mute: func() bool { muted++; return true }}

	assert.False(t, c.handle(key('e'), testView))
	assert.False(t, c.handle(key('p'), testView))
	assert.False(t, c.handle(key(' '), testView))
	assert.False(t, c.handle(key('m'), testView))
	assert.False(t, c.handle(key('x'), testView))

	require.Len(t, log, 3)
	assert.Equal(t, event.EventPickUp, log[0].t)
	assert.Equal(t, event.EventPunch, log[1].t)
	assert.Equal(t, event.EventPauseToggle, log[2].t)
	assert.Equal(t, 1, muted)
}

func TestControlsQuit(t *testing.T) {
	c := &controls{push: &pushLog{}}
	assert.True(t, c.handle(key('q'), testView))
	assert.True(t, c.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), testView))
	assert.True(t, c.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), testView))
}

func TestControlsClickMovesOnPressOnly(t *testing.T) {
	var log pushLog
	c := &controls{push: &log}

	c.handle(tcell.NewEventMouse(30, 6, tcell.Button1, tcell.ModNone), testView)
	c.handle(tcell.NewEventMouse(31, 6, tcell.Button1, tcell.ModNone), testView)

	require.Len(t, log, 1, "held button must not repeat")
	assert.Equal(t, event.EventMoveTo, log[0].t)
	p := log[0].payload.(*event.MoveToPayload)
	assert.InDelta(t, 0.0, p.Target.X, 1e-9)
	assert.InDelta(t, 0.0, p.Target.Z, 1e-9)

	c.handle(tcell.NewEventMouse(31, 6, tcell.ButtonNone, tcell.ModNone), testView)
	c.handle(tcell.NewEventMouse(40, 4, tcell.Button2, tcell.ModNone), testView)
	require.Len(t, log, 2)
	assert.Equal(t, event.EventThrow, log[1].t)
	tp := log[1].payload.(*event.ThrowPayload)
	assert.InDelta(t, 10.0, tp.Target.X, 1e-9)
	assert.InDelta(t, 4.0, tp.Target.Z, 1e-9)
}

func TestControlsIgnoresHUDClicks(t *testing.T) {
	var log pushLog
	c := &controls{push: &log}
	c.handle(tcell.NewEventMouse(10, 0, tcell.Button1, tcell.ModNone), testView)
	c.handle(tcell.NewEventMouse(10, 11, tcell.ButtonNone, tcell.ModNone), testView)
	c.handle(tcell.NewEventMouse(10, 11, tcell.Button1, tcell.ModNone), testView)
	assert.Empty(t, log)
}

func TestControlsThrowAtCursor(t *testing.T) {
	var log pushLog
	c := &controls{push: &log}

	c.handle(tcell.NewEventMouse(35, 6, tcell.ButtonNone, tcell.ModNone), testView)
	c.handle(key('t'), testView)

	require.Len(t, log, 1)
	assert.Equal(t, event.EventThrow, log[0].t)
	assert.InDelta(t, 5.0, log[0].payload.(*event.ThrowPayload).Target.X, 1e-9)
}
