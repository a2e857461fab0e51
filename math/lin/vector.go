// Copyright © 2026 Freestyle Sculpt contributors.

package lin

import "math"

// V3 is a 3 element vector. It is also used as a point/position.
type V3 struct {
	X float64
	Y float64
	Z float64
}

// NewV3 returns a new zero vector.
func NewV3() *V3 { return &V3{} }

// NewV3S returns a new vector set to the given values.
func NewV3S(x, y, z float64) *V3 { return &V3{x, y, z} }

// Eq (==) returns true if v and a have identical elements.
func (v *V3) Eq(a *V3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) almost-equals returns true if v and a are close enough that
// the difference makes no practical difference.
func (v *V3) Aeq(a *V3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

// GetS returns the float64 values of the vector.
func (v *V3) GetS() (x, y, z float64) { return v.X, v.Y, v.Z }

// SetS (=) sets the vector elements to the given values. Returns v.
func (v *V3) SetS(x, y, z float64) *V3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

// Set (= copy) sets v to have the same elements as a. Returns v.
func (v *V3) Set(a *V3) *V3 {
	v.X, v.Y, v.Z = a.X, a.Y, a.Z
	return v
}

// Add (+) sets v to a+b. Returns v. v may alias a or b.
func (v *V3) Add(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X+b.X, a.Y+b.Y, a.Z+b.Z
	return v
}

// Sub (-) sets v to a-b. Returns v. v may alias a or b.
func (v *V3) Sub(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return v
}

// Scale (*) sets v to a scaled by s. Returns v. v may alias a.
func (v *V3) Scale(a *V3, s float64) *V3 {
	v.X, v.Y, v.Z = a.X*s, a.Y*s, a.Z*s
	return v
}

// Div (/) divides each element of v by s. Returns v. No-op if s is zero.
func (v *V3) Div(s float64) *V3 {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y, v.Z = v.X*inv, v.Y*inv, v.Z*inv
	}
	return v
}

// Neg sets v to the negation of a. Returns v. v may alias a.
func (v *V3) Neg(a *V3) *V3 {
	v.X, v.Y, v.Z = -a.X, -a.Y, -a.Z
	return v
}

// Min sets v to the element-wise minimum of a and b. Returns v.
func (v *V3) Min(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)
	return v
}

// Max sets v to the element-wise maximum of a and b. Returns v.
func (v *V3) Max(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)
	return v
}

// Dot returns the dot product of v and a.
func (v *V3) Dot(a *V3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Cross sets v to the cross product of a and b. Returns v.
// v must not alias a or b.
func (v *V3) Cross(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X
	return v
}

// Len returns the length (magnitude) of v.
func (v *V3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the squared length of v. Cheaper than Len when only
// used for comparison, which is how most of the remesh band is expressed.
func (v *V3) LenSqr() float64 { return v.Dot(v) }

// Dist returns the distance between points v and a.
func (v *V3) Dist(a *V3) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the squared distance between points v and a.
func (v *V3) DistSqr(a *V3) float64 {
	dx, dy, dz := a.X-v.X, a.Y-v.Y, a.Z-v.Z
	return dx*dx + dy*dy + dz*dz
}

// Unit normalizes v in place. No-op if v has zero length. Returns v.
func (v *V3) Unit() *V3 {
	length := v.Len()
	if length != 0 {
		return v.Div(length)
	}
	return v
}

// Lerp sets v to the linear interpolation of a to b by fraction. Returns v.
func (v *V3) Lerp(a, b *V3, fraction float64) *V3 {
	v.X = Lerp(a.X, b.X, fraction)
	v.Y = Lerp(a.Y, b.Y, fraction)
	v.Z = Lerp(a.Z, b.Z, fraction)
	return v
}

// Plus returns a freshly allocated a+b, for call sites where threading a
// scratch vector through would hurt clarity.
func Plus(a, b *V3) *V3 { return NewV3().Add(a, b) }

// Minus returns a freshly allocated a-b. See Plus.
func Minus(a, b *V3) *V3 { return NewV3().Sub(a, b) }
