// Copyright © 2026 Freestyle Sculpt contributors.

// Package lin provides the vector math needed by the sculpting core:
// point/vector arithmetic in float64, expressed with in-place mutating
// methods so hot paths (remeshing, BVH refit, brush substeps) don't
// allocate a fresh vector per operation.
package lin

import "math"

// Epsilon is used to distinguish when a float is close enough to a number.
const Epsilon float64 = 0.000001

// AeqZ (~=) almost-equals zero returns true if x is close enough to zero
// that it makes no practical difference.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if a and b are close enough that
// the difference makes no practical difference.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Lerp returns the linear interpolation of a to b by the given ratio.
func Lerp(a, b, ratio float64) float64 { return (b-a)*ratio + a }

// Max3 returns the largest of the 3 numbers.
func Max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

// Min3 returns the smallest of the 3 numbers.
func Min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }

// Clamp returns s clamped to the range [lb, ub].
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}
