package parameter

// Simulation
const (
	// Gravity acceleration magnitude, applied along -Y
	Gravity = 9.81

	// ThrowAngle is the fixed launch elevation in radians (45 degrees)
	ThrowAngle = 0.7853981633974483

	LinearDamping  = 0.05
	AngularDamping = 0.3

	// BodyRadius approximates every body as a sphere for ground contact
	BodyRadius = 0.2

	// SleepSpeedSq stops resting bodies below this squared speed
	SleepSpeedSq = 0.01
)
