package parameter

// Terrain
const (
	TerrainWidth        = 100.0
	TerrainDepth        = 100.0
	TerrainSubdivisions = 100
	TerrainMinHeight    = 0.0
	TerrainMaxHeight    = 10.0

	// TerrainTreeChance is the share of grass cells painted as tree sites
	TerrainTreeChance = 0.08
)

// Level population
const (
	NumTrees   = 50
	NumBarrels = 10

	// MinRatioHeight and MinBarrelHeight reject beach and water cells
	MinRatioHeight  = 1.0
	MinBarrelHeight = 1.0
)

// Squared planar placement thresholds
const (
	TreeRatioMinD2   = 1.0
	PlayerRatioMinD2 = 4.0
	RatioRatioMinD2  = 2.0

	TreeBarrelMinD2   = 1.0
	RatioBarrelMinD2  = 4.0
	BarrelBarrelMinD2 = 4.0
	PlayerBarrelMinD2 = 4.0
)

// Placement retry
const (
	// PlacementRelaxFactor scales every threshold on each retry after exhaustion
	PlacementRelaxFactor = 0.75

	// PlacementMaxRetries bounds relaxed retries before level generation fails
	PlacementMaxRetries = 3
)

// Player start on the island
const (
	PlayerStartX = 31.0
	PlayerStartZ = -1.5
)
