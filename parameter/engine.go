package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the simulation and render interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps dt after a stall so physics does not tunnel
	MaxFrameDelta = 100 * time.Millisecond
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// InputQueueSize buffers terminal events between the poll goroutine and the frame
const InputQueueSize = 64
