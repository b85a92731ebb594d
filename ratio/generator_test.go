package ratio

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericre997/RatioRage/parameter"
)

func newTestGenerator(seed uint64, opts ...Option) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), zerolog.Nop(), opts...)
}

func TestEquivalent(t *testing.T) {
	assert.True(t, Equivalent(Ratio{3, 5}, Ratio{6, 10}))
	assert.True(t, Equivalent(Ratio{7, 7}, Ratio{1, 1}))
	assert.False(t, Equivalent(Ratio{3, 5}, Ratio{5, 3}))
	assert.False(t, Equivalent(Ratio{2, 3}, Ratio{3, 4}))
}

func TestNewRejectsZero(t *testing.T) {
	_, err := New(0, 3)
	assert.ErrorIs(t, err, ErrInvalidRatio)

	r, err := New(4, 9)
	require.NoError(t, err)
	assert.Equal(t, "4/9", r.String())
}

func TestDigits(t *testing.T) {
	assert.Equal(t, []int{0}, Digits(0))
	assert.Equal(t, []int{7}, Digits(7))
	assert.Equal(t, []int{1, 0, 5}, Digits(105))
}

func TestSeedComponents(t *testing.T) {
	primes := map[int]bool{1: true, 2: true, 3: true, 5: true, 7: true}
	isBase := func(v int) bool { return primes[v] }
	isProduct := func(v int) bool {
		for p := range primes {
			for q := range primes {
				if p != 1 && q != 1 && p*q == v {
					return true
				}
				if q != 1 && p == 1 && q == v {
					return true
				}
			}
		}
		return false
	}

	g := newTestGenerator(1)
	for i := 0; i < 2000; i++ {
		s := g.Seed()
		require.GreaterOrEqual(t, s.Numerator, 1)
		require.GreaterOrEqual(t, s.Denominator, 1)

		nBase, dBase := isBase(s.Numerator), isBase(s.Denominator)
		// At most one component carries the extra multiplier
		require.True(t, nBase || dBase, "both components multiplied: %s", s)
		if !nBase {
			require.True(t, isProduct(s.Numerator), "numerator %d not a prime product", s.Numerator)
		}
		if !dBase {
			require.True(t, isProduct(s.Denominator), "denominator %d not a prime product", s.Denominator)
		}
	}
}

func TestEquivalentRatios(t *testing.T) {
	g := newTestGenerator(2)
	seed := Ratio{3, 5}

	got := g.Equivalent(seed, 3, parameter.EquivalentFactors)
	require.Len(t, got, 3)

	factors := make(map[int]bool)
	for _, r := range got {
		assert.Equal(t, r.Numerator*seed.Denominator, r.Denominator*seed.Numerator)
		f := r.Numerator / seed.Numerator
		assert.False(t, factors[f], "factor %d reused", f)
		factors[f] = true
	}
}

func TestEquivalentRatiosCappedByFactors(t *testing.T) {
	g := newTestGenerator(3)
	got := g.Equivalent(Ratio{1, 2}, 10, []int{2, 3})
	assert.Len(t, got, 2)
	assert.ElementsMatch(t, []Ratio{{2, 4}, {3, 6}}, got)

	assert.Empty(t, g.Equivalent(Ratio{1, 2}, 0, []int{2, 3}))
}

func TestEquivalentDoesNotMutateFactors(t *testing.T) {
	g := newTestGenerator(4)
	factors := []int{2, 3, 4}
	g.Equivalent(Ratio{1, 3}, 3, factors)
	assert.Equal(t, []int{2, 3, 4}, factors)
}

func TestNonEquivalentRatios(t *testing.T) {
	g := newTestGenerator(5)
	seed := Ratio{3, 5}

	got := g.NonEquivalent(seed, 5)
	require.Len(t, got, 5)

	seen := make(map[Ratio]bool)
	for _, r := range got {
		assert.False(t, Equivalent(r, seed), "%s equivalent to %s", r, seed)
		assert.False(t, seen[r], "duplicate %s", r)
		seen[r] = true
		assert.LessOrEqual(t, r.Numerator, r.Denominator, "ordering direction lost for %s", r)
		assert.GreaterOrEqual(t, r.Numerator, 1)
		assert.LessOrEqual(t, r.Denominator, 100)
	}
}

func TestNonEquivalentKeepsDirection(t *testing.T) {
	g := newTestGenerator(6)
	for _, r := range g.NonEquivalent(Ratio{7, 2}, 50) {
		assert.GreaterOrEqual(t, r.Numerator, r.Denominator)
		assert.False(t, Equivalent(r, Ratio{7, 2}))
	}
}

func TestNonEquivalentFallbackScan(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(rand.New(rand.NewPCG(7, 7)), zerolog.New(&buf), WithMaxAttempts(0))

	seed := Ratio{2, 3}
	got := g.NonEquivalent(seed, 5)
	require.Len(t, got, 5)
	for _, r := range got {
		assert.False(t, Equivalent(r, seed))
		assert.LessOrEqual(t, r.Numerator, r.Denominator)
	}
	// Scan order is deterministic
	assert.Equal(t, []Ratio{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}, got)
	assert.Contains(t, buf.String(), "falling back to scan")
}

func TestNonEquivalentAcceptsEqualParts(t *testing.T) {
	for _, seed := range []Ratio{{3, 5}, {7, 2}} {
		g := NewGenerator(rand.New(rand.NewPCG(1, 1)), zerolog.Nop(), WithMaxAttempts(0))
		got := g.NonEquivalent(seed, 500)
		assert.Contains(t, got, Ratio{4, 4}, "seed %s", seed)
		assert.Contains(t, got, Ratio{1, 1}, "seed %s", seed)
	}
	assert.True(t, keepsOrder(Ratio{3, 5}, 4, 4))
	assert.False(t, keepsOrder(Ratio{3, 5}, 5, 4))
	assert.True(t, keepsOrder(Ratio{7, 2}, 4, 4))
	assert.False(t, keepsOrder(Ratio{7, 2}, 4, 5))
}

func TestNonEquivalentEqualSeed(t *testing.T) {
	g := newTestGenerator(8)
	seed := Ratio{3, 3}
	for _, r := range g.NonEquivalent(seed, 20) {
		assert.NotEqual(t, r.Numerator, r.Denominator)
	}
}

func TestLevelSet(t *testing.T) {
	g := newTestGenerator(9)
	set := g.Level(parameter.NumEquivalentRatios, parameter.NumNonEquivalentRatios)

	require.Len(t, set.Equivalent, parameter.NumEquivalentRatios)
	require.Len(t, set.NonEquivalent, parameter.NumNonEquivalentRatios)
	assert.Contains(t, set.Equivalent, set.Target)
	for _, r := range set.Equivalent {
		assert.True(t, Equivalent(r, set.Target))
	}
	for _, r := range set.NonEquivalent {
		assert.False(t, Equivalent(r, set.Target))
	}
	assert.Len(t, set.All(), parameter.NumEquivalentRatios+parameter.NumNonEquivalentRatios)
}

// Seed 3/5 with no multiplier, three equivalent and five decoys
func TestScenarioThreeFifths(t *testing.T) {
	g := newTestGenerator(10)
	seed := Ratio{3, 5}

	eq := g.Equivalent(seed, 3, []int{2, 3, 4, 5, 6, 7, 8, 9, 10})
	require.Len(t, eq, 3)
	factors := map[int]bool{}
	for _, r := range eq {
		require.True(t, Equivalent(r, seed))
		factors[r.Numerator/3] = true
	}
	assert.Len(t, factors, 3)

	non := g.NonEquivalent(seed, 5)
	require.Len(t, non, 5)
	for _, r := range non {
		assert.False(t, Equivalent(r, seed))
	}
}
