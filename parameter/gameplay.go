package parameter

// Barrel
const (
	BarrelHeight    = 3.1196
	BarrelScaling   = 0.6
	BarrelFragments = 8

	// BarrelRatioHitD2 explodes a thrown barrel passing this close to a live ratio
	BarrelRatioHitD2 = 1.0
)

// Ratio display
const (
	DigitWidth     = 0.9
	NumeratorY     = 2.0
	BarY           = 1.5
	DenominatorY   = 0.0
	BarSizes       = 4
	DigitFragments = 4
	BarFragments   = 3

	// RatioSpinRadiansPerSecond rotates intact ratios around Y
	RatioSpinRadiansPerSecond = -3000.0 / 3600.0
)

// Score
const (
	ScorePerEquivalentRatio = 1
)
