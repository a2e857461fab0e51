// Copyright © 2026 Freestyle Sculpt contributors.

package bvh

import "github.com/madmaxio/freestyle-sculpt/math/lin"

// RayHit describes the nearest ray-triangle intersection found by
// RaycastNearest.
type RayHit struct {
	Key    int
	T      float64 // ray parameter of the hit (Point = origin + T·dir); a distance only when dir is unit length.
	Point  lin.V3
	Normal lin.V3 // unnormalized cross of the two triangle edges; caller normalizes if needed.
}

// TriangleAt resolves a leaf key to the three corners of its triangle,
// or ok=false if the key is stale (removed between the query being
// built and run).
type TriangleAt func(key int) (a, b, c lin.V3, ok bool)

// RaycastNearest performs a best-first traversal of the BVH (grounded on
// missinglink-simplefeatures/rtree's PrioritySearch, adapted from
// nearest-box-by-distance to nearest-hit-by-time-of-impact) and returns
// the closest ray-triangle intersection, if any.
func (t *Tree) RaycastNearest(origin, dir lin.V3, triangleAt TriangleAt) (RayHit, bool) {
	bound := func(box AABB) (float64, bool) {
		tmin, ok := rayAABB(origin, dir, box)
		return tmin, ok
	}
	key, _, found := t.bestFirst(bound, func(key int) (float64, bool) {
		a, b, c, ok := triangleAt(key)
		if !ok {
			return 0, false
		}
		tHit, hit := rayTriangle(origin, dir, a, b, c)
		if !hit {
			return 0, false
		}
		return tHit, true
	})
	if !found {
		return RayHit{}, false
	}
	a, b, c, ok := triangleAt(key)
	if !ok {
		return RayHit{}, false
	}
	tHit, _ := rayTriangle(origin, dir, a, b, c)
	point := lin.NewV3().Scale(&dir, tHit)
	point.Add(&origin, point)
	e1, e2 := lin.Minus(&b, &a), lin.Minus(&c, &a)
	normal := lin.NewV3().Cross(e1, e2)
	return RayHit{Key: key, T: tHit, Point: *point, Normal: *normal}, true
}

// rayAABB returns the entry distance of the ray into box (ray-slab
// method), or ok=false if the ray misses the box or the box is entirely
// behind the origin.
func rayAABB(origin, dir lin.V3, box AABB) (float64, bool) {
	tmin, tmax := 0.0, posInf
	for axis := 0; axis < 3; axis++ {
		o, d := axisComponent(origin, axis), axisComponent(dir, axis)
		lo, hi := axisComponent(box.Min, axis), axisComponent(box.Max, axis)
		if lin.AeqZ(d) {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1, t2 := (lo-o)*inv, (hi-o)*inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func axisComponent(v lin.V3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// rayTriangle is the Möller-Trumbore ray-triangle intersection test,
// written in the closed-form, scratch-free style of
// gazed-vu/physics/caster.go's ray-sphere/ray-plane routines (early-out
// on parallel/behind-origin cases, no heap allocation).
func rayTriangle(origin, dir, a, b, c lin.V3) (float64, bool) {
	e1 := lin.Minus(&b, &a)
	e2 := lin.Minus(&c, &a)
	pvec := lin.NewV3().Cross(&dir, e2)
	det := e1.Dot(pvec)
	if lin.AeqZ(det) {
		return 0, false // parallel to the triangle plane.
	}
	invDet := 1 / det
	tvec := lin.Minus(&origin, &a)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := lin.NewV3().Cross(tvec, e1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	tHit := e2.Dot(qvec) * invDet
	if tHit < lin.Epsilon {
		return 0, false // triangle is behind the ray origin.
	}
	return tHit, true
}
