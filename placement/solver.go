// Package placement picks non-overlapping spawn points from a candidate set
// under per-category minimum distance constraints
package placement

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/vmath"
)

// ErrCandidatesExhausted is returned when a batch needs more positions than remain
var ErrCandidatesExhausted = errors.New("placement candidates exhausted")

// Exclusion is a fixed obstacle set with its own squared planar threshold
type Exclusion struct {
	Positions []vmath.Vec3F
	MinD2     float64
}

// Valid reports whether pos keeps at least minD2 squared planar distance from every obstacle
func Valid(pos vmath.Vec3F, obstacles []vmath.Vec3F, minD2 float64) bool {
	for _, o := range obstacles {
		if vmath.V3FDistSqXZ(pos, o) < minD2 {
			return false
		}
	}
	return true
}

// Solver is a single-use working set for one level-generation pass
// Candidates are consumed and pruned destructively
type Solver struct {
	candidates []vmath.Vec3F
	rng        *rand.Rand
}

// NewSolver copies candidates; the caller's slice is never modified
func NewSolver(candidates []vmath.Vec3F, rng *rand.Rand) *Solver {
	return &Solver{
		candidates: slices.Clone(candidates),
		rng:        rng,
	}
}

// Len returns the number of remaining candidates
func (s *Solver) Len() int {
	return len(s.candidates)
}

// Candidates returns a copy of the remaining candidates
func (s *Solver) Candidates() []vmath.Vec3F {
	return slices.Clone(s.candidates)
}

// Filter drops candidates below minElevation and candidates too close to any exclusion
// A nil terrain skips the elevation test
func (s *Solver) Filter(terrain core.Terrain, minElevation float64, exclusions ...Exclusion) {
	s.candidates = slices.DeleteFunc(s.candidates, func(c vmath.Vec3F) bool {
		if terrain != nil && terrain.HeightAt(c.X, c.Z) < minElevation {
			return true
		}
		for _, ex := range exclusions {
			if !Valid(c, ex.Positions, ex.MinD2) {
				return true
			}
		}
		return false
	})
}

// Shuffle permutes candidates uniformly (Fisher-Yates)
func (s *Solver) Shuffle() {
	for i := len(s.candidates) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.candidates[i], s.candidates[j] = s.candidates[j], s.candidates[i]
	}
}

// SelectNext pops one candidate and prunes every remaining candidate within selfMinD2 of it
func (s *Solver) SelectNext(selfMinD2 float64) (vmath.Vec3F, error) {
	if len(s.candidates) == 0 {
		return vmath.Vec3F{}, ErrCandidatesExhausted
	}

	last := len(s.candidates) - 1
	picked := s.candidates[last]
	s.candidates = s.candidates[:last]

	s.candidates = slices.DeleteFunc(s.candidates, func(c vmath.Vec3F) bool {
		return vmath.V3FDistSqXZ(c, picked) < selfMinD2
	})
	return picked, nil
}

// Place selects n positions and then resolves their elevation from terrain
// Positions already selected are consumed even when the batch fails
func (s *Solver) Place(n int, selfMinD2 float64, terrain core.Terrain) ([]vmath.Vec3F, error) {
	out := make([]vmath.Vec3F, 0, n)
	for i := 0; i < n; i++ {
		pos, err := s.SelectNext(selfMinD2)
		if err != nil {
			return nil, fmt.Errorf("placed %d of %d: %w", i, n, err)
		}
		out = append(out, pos)
	}

	if terrain != nil {
		for i := range out {
			out[i].Y = terrain.HeightAt(out[i].X, out[i].Z)
		}
	}
	return out, nil
}
