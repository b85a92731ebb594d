package engine

import "time"

// System is one unit of per-frame game logic
type System interface {
	Name() string
	// Priority orders systems within a frame, lower runs first
	Priority() int
	// Update advances the system by dt of game time
	Update(dt time.Duration)
}
