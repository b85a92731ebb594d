// Package system adapts gameplay components onto the frame loop
// Each adapter is an engine.System; those that react to events also
// implement event.Handler and are registered with the router by the loop
package system

import (
	"github.com/ericre997/RatioRage/event"
)

// Pusher emits events into the frame queue; *engine.Loop satisfies it
type Pusher interface {
	Push(t event.EventType, payload any)
}
