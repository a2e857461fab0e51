// Copyright © 2026 Freestyle Sculpt contributors.

package bvh

import "github.com/madmaxio/freestyle-sculpt/math/lin"

// Projection is the nearest point on a tracked surface to a query point.
type Projection struct {
	Key     int
	Point   lin.V3
	DistSqr float64
}

// ClosestPointOnTriangle resolves a leaf key to its triangle's three
// corners, used by ProjectPoint; same shape as TriangleAt.
type ClosestPointOnTriangle func(key int) (a, b, c lin.V3, ok bool)

// ProjectPoint performs a best-first nearest-box search (bound by
// AABB.DistSqr, so no box whose nearest corner is already farther than
// the current best closest-point is ever opened) and returns the
// closest point lying on any indexed triangle. Inside/outside
// classification against vertex pseudo-normals is left to callers that
// hold per-vertex normal data; the BVH only tracks boxes and keys.
func (t *Tree) ProjectPoint(p lin.V3, closestPoint ClosestPointOnTriangle) (Projection, bool) {
	bound := func(box AABB) (float64, bool) {
		return box.DistSqr(p), true
	}
	key, value, found := t.bestFirst(bound, func(key int) (float64, bool) {
		a, b, c, ok := closestPoint(key)
		if !ok {
			return 0, false
		}
		cp := closestPointOnTriangle(p, a, b, c)
		return p.DistSqr(cp), true
	})
	if !found {
		return Projection{}, false
	}
	a, b, c, ok := closestPoint(key)
	if !ok {
		return Projection{}, false
	}
	cp := closestPointOnTriangle(p, a, b, c)
	return Projection{Key: key, Point: cp, DistSqr: value}, true
}

// closestPointOnTriangle returns the point of triangle abc nearest p,
// using the standard barycentric region test (Ericson, Real-Time
// Collision Detection §5.1.5): classify p against the three edges and
// the vertex/edge/face Voronoi regions rather than solving a
// constrained least-squares system.
func closestPointOnTriangle(p, a, b, c lin.V3) lin.V3 {
	ab := lin.Minus(&b, &a)
	ac := lin.Minus(&c, &a)
	ap := lin.Minus(&p, &a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := lin.Minus(&p, &b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		out := lin.NewV3().Scale(ab, v)
		out.Add(&a, out)
		return *out
	}

	cp := lin.Minus(&p, &c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		out := lin.NewV3().Scale(ac, w)
		out.Add(&a, out)
		return *out
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		bc := lin.Minus(&c, &b)
		out := lin.NewV3().Scale(bc, w)
		out.Add(&b, out)
		return *out
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	out := lin.NewV3().Scale(ab, v)
	acw := lin.NewV3().Scale(ac, w)
	out.Add(out, acw)
	out.Add(&a, out)
	return *out
}
