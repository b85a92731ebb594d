package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/ericre997/RatioRage/event"
	"github.com/ericre997/RatioRage/render"
)

// pusher accepts gameplay requests; *engine.Loop satisfies it
type pusher interface {
	Push(t event.EventType, payload any)
}

// controls translates terminal input into gameplay events
// Called only from the frame goroutine
type controls struct {
	push   pusher
	mute   func() bool
	cursor [2]int
	held   tcell.ButtonMask
}

// handle applies one terminal event against the current view
// Returns true when the player asked to quit
func (c *controls) handle(ev tcell.Event, v render.View) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.key(ev, v)
	case *tcell.EventMouse:
		c.mouse(ev, v)
	}
	return false
}

func (c *controls) key(ev *tcell.EventKey, v render.View) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'e':
		c.push.Push(event.EventPickUp, nil)
	case 't':
		c.push.Push(event.EventThrow, &event.ThrowPayload{Target: v.ToWorld(c.cursor[0], c.cursor[1])})
	case 'p':
		c.push.Push(event.EventPunch, nil)
	case ' ':
		c.push.Push(event.EventPauseToggle, nil)
	case 'm':
		if c.mute != nil {
			c.mute()
		}
	}
	return false
}

// mouse acts on button press edges; holding a button does not repeat
func (c *controls) mouse(ev *tcell.EventMouse, v render.View) {
	col, row := ev.Position()
	c.cursor = [2]int{col, row}

	buttons := ev.Buttons()
	pressed := buttons &^ c.held
	c.held = buttons

	// Clicks on the HUD rows are ignored
	if row < v.Top || row >= v.Top+v.Height {
		return
	}
	target := v.ToWorld(col, row)
	switch {
	case pressed&tcell.Button1 != 0:
		c.push.Push(event.EventMoveTo, &event.MoveToPayload{Target: target})
	case pressed&tcell.Button2 != 0:
		c.push.Push(event.EventThrow, &event.ThrowPayload{Target: target})
	}
}
