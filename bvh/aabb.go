// Copyright © 2026 Freestyle Sculpt contributors.

package bvh

import "github.com/madmaxio/freestyle-sculpt/math/lin"

// AABB is an axis-aligned bounding box given by its smallest and largest
// corners. The zero value is degenerate (a point at the origin); use
// Empty() as the starting point for a running union.
type AABB struct {
	Min lin.V3
	Max lin.V3
}

// Empty returns an AABB with inverted bounds, suitable as the seed for
// repeated Union calls (the first Union collapses it to the first box).
func Empty() AABB {
	const large = 1e300
	return AABB{
		Min: lin.V3{X: large, Y: large, Z: large},
		Max: lin.V3{X: -large, Y: -large, Z: -large},
	}
}

// FromPoints returns the bounding box of three points (a triangle face).
func FromPoints(a, b, c lin.V3) AABB {
	box := AABB{Min: a, Max: a}
	box = box.ExpandPoint(b)
	box = box.ExpandPoint(c)
	return box
}

// ExpandPoint returns the box enlarged, if necessary, to contain p.
func (b AABB) ExpandPoint(p lin.V3) AABB {
	b.Min.X, b.Min.Y, b.Min.Z = lin.Min3(b.Min.X, p.X, p.X), lin.Min3(b.Min.Y, p.Y, p.Y), lin.Min3(b.Min.Z, p.Z, p.Z)
	b.Max.X, b.Max.Y, b.Max.Z = lin.Max3(b.Max.X, p.X, p.X), lin.Max3(b.Max.Y, p.Y, p.Y), lin.Max3(b.Max.Z, p.Z, p.Z)
	return b
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: lin.V3{X: lin.Min3(a.Min.X, b.Min.X, a.Min.X), Y: lin.Min3(a.Min.Y, b.Min.Y, a.Min.Y), Z: lin.Min3(a.Min.Z, b.Min.Z, a.Min.Z)},
		Max: lin.V3{X: lin.Max3(a.Max.X, b.Max.X, a.Max.X), Y: lin.Max3(a.Max.Y, b.Max.Y, a.Max.Y), Z: lin.Max3(a.Max.Z, b.Max.Z, a.Max.Z)},
	}
}

// Expand returns the box grown by margin on every side. Used for the
// BVH's loose-leaf margin so small position changes don't require an
// immediate refit.
func (b AABB) Expand(margin float64) AABB {
	return AABB{
		Min: lin.V3{X: b.Min.X - margin, Y: b.Min.Y - margin, Z: b.Min.Z - margin},
		Max: lin.V3{X: b.Max.X + margin, Y: b.Max.Y + margin, Z: b.Max.Z + margin},
	}
}

// Overlaps returns true if a and b share any interior volume.
// gazed-vu/physics/shape.go's Abox.Overlaps uses this same strict
// inequality form (touching along a face does not count as overlap).
func (a AABB) Overlaps(b AABB) bool {
	return a.Max.X > b.Min.X && a.Min.X < b.Max.X &&
		a.Max.Y > b.Min.Y && a.Min.Y < b.Max.Y &&
		a.Max.Z > b.Min.Z && a.Min.Z < b.Max.Z
}

// Contains returns true if b is entirely inside a.
func (a AABB) Contains(b AABB) bool {
	return b.Min.X >= a.Min.X && b.Max.X <= a.Max.X &&
		b.Min.Y >= a.Min.Y && b.Max.Y <= a.Max.Y &&
		b.Min.Z >= a.Min.Z && b.Max.Z <= a.Max.Z
}

// Center returns the midpoint of the box.
func (a AABB) Center() lin.V3 {
	return lin.V3{
		X: (a.Min.X + a.Max.X) * 0.5,
		Y: (a.Min.Y + a.Max.Y) * 0.5,
		Z: (a.Min.Z + a.Max.Z) * 0.5,
	}
}

// SurfaceArea returns the surface area of the box, used by the builder
// to pick a reasonable split axis/point.
func (a AABB) SurfaceArea() float64 {
	dx, dy, dz := a.Max.X-a.Min.X, a.Max.Y-a.Min.Y, a.Max.Z-a.Min.Z
	if dx < 0 || dy < 0 || dz < 0 {
		return 0
	}
	return 2 * (dx*dy + dy*dz + dz*dx)
}

// DistSqr returns the squared distance from p to the nearest point of
// the box (zero if p is inside).
func (a AABB) DistSqr(p lin.V3) float64 {
	dx := axisDist(p.X, a.Min.X, a.Max.X)
	dy := axisDist(p.Y, a.Min.Y, a.Max.Y)
	dz := axisDist(p.Z, a.Min.Z, a.Max.Z)
	return dx*dx + dy*dy + dz*dz
}

func axisDist(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}
