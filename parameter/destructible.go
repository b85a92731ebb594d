package parameter

import "time"

// Fragment simulation
const (
	FragmentMass        = 10.0
	FragmentFriction    = 0.5
	FragmentRestitution = 0.5

	// Linear speed per axis is base + spread*r
	FragmentSpeedXZBase   = 2.0
	FragmentSpeedXZSpread = 4.0
	FragmentSpeedYBase    = 8.0
	FragmentSpeedYSpread  = 12.0

	// FragmentUpBias is the fixed Y component of the launch direction before normalization
	FragmentUpBias = 0.5

	// FragmentAngularRange spins each axis uniformly in [-range/2, range/2]
	FragmentAngularRange = 4.0
)

// ExplosionTTL is how long debris lingers before disposal
const ExplosionTTL = 3000 * time.Millisecond
