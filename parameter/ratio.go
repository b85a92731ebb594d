package parameter

// Ratio generation
const (
	// RatioMultiplyNumeratorChance rolls below this multiply the numerator
	RatioMultiplyNumeratorChance = 0.25

	// RatioMultiplyDenominatorChance rolls below this (and above the numerator chance) multiply the denominator
	RatioMultiplyDenominatorChance = 0.5

	// NonEquivalentMin and NonEquivalentMax bound sampled decoy components, inclusive
	NonEquivalentMin = 1
	NonEquivalentMax = 100

	// NonEquivalentMaxAttempts caps rejection sampling before the deterministic fallback scan
	NonEquivalentMaxAttempts = 10000

	// NumEquivalentRatios counts equivalent ratios per level including the seed
	NumEquivalentRatios = 4

	// NumNonEquivalentRatios counts decoys per level
	NumNonEquivalentRatios = 5
)

// SeedPrimes is the component pool for seed ratios
var SeedPrimes = []int{1, 2, 3, 5, 7}

// EquivalentFactors scale the seed into equivalent ratios
var EquivalentFactors = []int{2, 3, 4, 5, 6, 7, 8, 9, 10}
