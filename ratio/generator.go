package ratio

import (
	"math/rand/v2"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ericre997/RatioRage/parameter"
)

// Generator draws ratios from an injected random source
// Not safe for concurrent use; one generator per level build
type Generator struct {
	rng         *rand.Rand
	log         zerolog.Logger
	maxAttempts int
}

// Option configures a Generator
type Option func(*Generator)

// WithMaxAttempts overrides the rejection-sampling cap for decoys
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

// NewGenerator creates a generator; log receives fallback warnings
func NewGenerator(rng *rand.Rand, log zerolog.Logger, opts ...Option) *Generator {
	g := &Generator{
		rng:         rng,
		log:         log.With().Str("component", "ratio").Logger(),
		maxAttempts: parameter.NonEquivalentMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed picks numerator and denominator from the prime pool, then may multiply
// one of them by a further prime distinct from the other component
func (g *Generator) Seed() Ratio {
	pool := parameter.SeedPrimes
	n := pool[g.rng.IntN(len(pool))]
	d := pool[g.rng.IntN(len(pool))]

	primes := without(pool, 1)
	roll := g.rng.Float64()
	switch {
	case roll < parameter.RatioMultiplyNumeratorChance:
		choices := without(primes, d)
		n *= choices[g.rng.IntN(len(choices))]
	case roll < parameter.RatioMultiplyDenominatorChance:
		choices := without(primes, n)
		d *= choices[g.rng.IntN(len(choices))]
	}

	return Ratio{Numerator: n, Denominator: d}
}

// Equivalent scales seed by min(count, len(factors)) factors drawn without replacement
func (g *Generator) Equivalent(seed Ratio, count int, factors []int) []Ratio {
	remaining := slices.Clone(factors)
	n := min(count, len(remaining))
	if n <= 0 {
		return nil
	}

	out := make([]Ratio, 0, n)
	for range n {
		idx := g.rng.IntN(len(remaining))
		out = append(out, seed.Scale(remaining[idx]))
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	return out
}

// NonEquivalent samples count distinct ratios in [1,100]² that keep seed's
// ordering direction and fail the equivalence test against it
// Rejection sampling is capped; a deterministic scan fills any shortfall
func (g *Generator) NonEquivalent(seed Ratio, count int) []Ratio {
	if count <= 0 {
		return nil
	}

	out := make([]Ratio, 0, count)
	seen := make(map[Ratio]struct{}, count)
	accept := func(r Ratio) {
		if Equivalent(r, seed) {
			return
		}
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	span := parameter.NonEquivalentMax - parameter.NonEquivalentMin + 1
	for attempt := 0; len(out) < count && attempt < g.maxAttempts; attempt++ {
		a := g.rng.IntN(span) + parameter.NonEquivalentMin
		b := g.rng.IntN(span) + parameter.NonEquivalentMin
		if (seed.Numerator > seed.Denominator && a < b) ||
			(seed.Numerator < seed.Denominator && a > b) {
			a, b = b, a
		}
		if keepsOrder(seed, a, b) {
			accept(Ratio{Numerator: a, Denominator: b})
		}
	}

	if len(out) < count {
		g.log.Warn().
			Str("seed", seed.String()).
			Int("wanted", count).
			Int("sampled", len(out)).
			Int("attempts", g.maxAttempts).
			Msg("Decoy sampling exhausted, falling back to scan")
		g.scan(seed, count, accept, func() int { return len(out) })
	}

	if len(out) < count {
		g.log.Warn().
			Str("seed", seed.String()).
			Int("wanted", count).
			Int("generated", len(out)).
			Msg("Not enough distinct decoys in range")
	}
	return out
}

// scan walks [min,max]² in order offering pairs that keep seed's order
func (g *Generator) scan(seed Ratio, count int, accept func(Ratio), have func() int) {
	for a := parameter.NonEquivalentMin; a <= parameter.NonEquivalentMax; a++ {
		for b := parameter.NonEquivalentMin; b <= parameter.NonEquivalentMax; b++ {
			if have() >= count {
				return
			}
			if keepsOrder(seed, a, b) {
				accept(Ratio{Numerator: a, Denominator: b})
			}
		}
	}
}

// Level builds a level's ratio set: the seed is the target, numEquivalent
// counts the target itself
func (g *Generator) Level(numEquivalent, numNonEquivalent int) Set {
	seed := g.Seed()
	eq := g.Equivalent(seed, numEquivalent-1, parameter.EquivalentFactors)
	eq = append(eq, seed)
	return Set{
		Target:        seed,
		Equivalent:    eq,
		NonEquivalent: g.NonEquivalent(seed, numNonEquivalent),
	}
}

// keepsOrder rejects pairs ordered against seed; equal parts and an even seed always pass
func keepsOrder(seed Ratio, a, b int) bool {
	switch {
	case seed.Numerator > seed.Denominator:
		return a >= b
	case seed.Numerator < seed.Denominator:
		return a <= b
	}
	return true
}

func without(values []int, v int) []int {
	out := make([]int, 0, len(values))
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
