package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityPlayer    = 10
	PriorityAnimation = 20 // After movement picks locomotion
	PriorityPhysics   = 40
	PriorityBarrel    = 50 // After physics, flight contact uses new positions
	PriorityRatio     = 60
	PriorityShockwave = 70 // After lifecycle maintenance
	PriorityParticle  = 80
	PriorityLevel     = 90  // Completion check after all destruction this frame
	PriorityAudio     = 100 // Event fan-out, after game logic
	PriorityStatus    = 1000
)
