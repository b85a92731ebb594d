// Package ratio generates the level's target ratio and its equivalent and
// non-equivalent decoys
package ratio

import (
	"errors"
	"fmt"
)

// ErrInvalidRatio is returned for components below 1
var ErrInvalidRatio = errors.New("ratio components must be >= 1")

// Ratio is an immutable numerator/denominator pair, both >= 1
type Ratio struct {
	Numerator   int
	Denominator int
}

// New validates and builds a Ratio
func New(numerator, denominator int) (Ratio, error) {
	if numerator < 1 || denominator < 1 {
		return Ratio{}, fmt.Errorf("%d/%d: %w", numerator, denominator, ErrInvalidRatio)
	}
	return Ratio{Numerator: numerator, Denominator: denominator}, nil
}

// Equivalent reports whether a and b are equal by cross-multiplication
func Equivalent(a, b Ratio) bool {
	return a.Numerator*b.Denominator == a.Denominator*b.Numerator
}

// Scale multiplies both components by f
func (r Ratio) Scale(f int) Ratio {
	return Ratio{Numerator: r.Numerator * f, Denominator: r.Denominator * f}
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Numerator, r.Denominator)
}

// Digits returns the base-10 digits of n, most significant first
func Digits(n int) []int {
	if n <= 0 {
		return []int{0}
	}
	var out []int
	for ; n > 0; n /= 10 {
		out = append(out, n%10)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Set is one level's ratios
type Set struct {
	Target        Ratio
	Equivalent    []Ratio // Includes the target
	NonEquivalent []Ratio
}

// All returns equivalent ratios followed by decoys
func (s Set) All() []Ratio {
	out := make([]Ratio, 0, len(s.Equivalent)+len(s.NonEquivalent))
	out = append(out, s.Equivalent...)
	return append(out, s.NonEquivalent...)
}
