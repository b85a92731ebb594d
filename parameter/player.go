package parameter

// Player movement
const (
	// WalkSpeed in world units per second
	WalkSpeed = 20.0

	PlayerSize = 1.0

	// MinMoveDistance ignores clicks closer than this
	MinMoveDistance = 0.1

	// MinPlayerHeight keeps the player out of water
	MinPlayerHeight = 0.1

	// PickupRadiusSq is the squared planar reach for grabbing a barrel
	PickupRadiusSq = 4.0

	// CarryHeight lifts a carried barrel above the player origin
	CarryHeight = 1.5
)
