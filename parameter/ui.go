package parameter

// HUD layout
const (
	HUDRows = 2

	// ViewCellsPerUnit scales world units to terminal cells horizontally
	ViewCellsPerUnit = 0.8

	// ViewAspect compensates for terminal cells being taller than wide
	ViewAspect = 0.5
)
