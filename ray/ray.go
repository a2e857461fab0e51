// Copyright © 2026 Freestyle Sculpt contributors.

// Package ray casts rays and projects points against a mesh's BVH,
// recovering the hit face id as well as the time-of-impact point.
// Grounded on gazed-vu/physics/caster.go's Raycast entry point, adapted
// from a scene of rigid-body shapes to a single mesh's triangle BVH.
package ray

import (
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    lin.V3
	Direction lin.V3
}

// PointAt returns origin + t*direction.
func (r Ray) PointAt(t float64) lin.V3 {
	p := lin.NewV3().Scale(&r.Direction, t)
	p.Add(&r.Origin, p)
	return *p
}

// FaceIntersection is the result of a successful ray/mesh or
// point/mesh query: the hit point and the face it lies on.
type FaceIntersection struct {
	Point lin.V3
	Face  mesh.FaceID
}

// CastRayAndGetFace finds the nearest triangle the ray hits, via the
// BVH's best-first ray traversal, then recovers the face id. The
// traversal returns the hit leaf key and hit point; the key is resolved
// back to a FaceID through Mesh.FaceByIndex (§4.H).
func CastRayAndGetFace(m *mesh.Mesh, r Ray) (FaceIntersection, bool) {
	hit, ok := m.BVH().RaycastNearest(r.Origin, r.Direction, m.FaceTriangle)
	if !ok {
		return FaceIntersection{}, false
	}
	fid, ok := m.FaceByIndex(hit.Key)
	if !ok {
		return FaceIntersection{}, false
	}
	return FaceIntersection{Point: hit.Point, Face: fid}, true
}

// Project finds the closest point on the mesh's surface to p and the
// face it lies on, without a ray — used by Translate's re-projection
// step when the cursor ray misses the mesh mid-stroke.
func Project(m *mesh.Mesh, p lin.V3) (FaceIntersection, bool) {
	proj, ok := m.BVH().ProjectPoint(p, m.FaceTriangle)
	if !ok {
		return FaceIntersection{}, false
	}
	fid, ok := m.FaceByIndex(proj.Key)
	if !ok {
		return FaceIntersection{}, false
	}
	return FaceIntersection{Point: proj.Point, Face: fid}, true
}
