// Copyright © 2026 Freestyle Sculpt contributors.

package selector

import (
	"math"

	"github.com/madmaxio/freestyle-sculpt/bvh"
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/selection"
)

// VolumeSphereWithFalloff queries the BVH for every face whose box
// overlaps an AABB of half-extent r+f around center, resolves to
// vertices, keeps those within squared distance (r+f)² and selects
// their incident faces (§4.F). Stale ids surfaced by a query between
// the BVH snapshot and the mesh (a face removed mid-gesture) are
// silently skipped.
func VolumeSphereWithFalloff(m *mesh.Mesh, center lin.V3, r, f float64, falloffFn FalloffFn) *WeightedSelection {
	reach := r + f
	box := bvh.AABB{
		Min: lin.V3{X: center.X - reach, Y: center.Y - reach, Z: center.Z - reach},
		Max: lin.V3{X: center.X + reach, Y: center.Y + reach, Z: center.Z + reach},
	}

	faceSet := selection.New()
	for _, idx := range m.BVH().IntersectAABB(box) {
		if fid, ok := m.FaceByIndex(idx); ok {
			faceSet.InsertFace(fid)
		}
	}

	candidates := selection.ResolveToVertices(m, faceSet)
	reachSqr := reach * reach

	out := newWeightedSelection()
	for v := range candidates {
		vert, ok := m.Vertex(v)
		if !ok {
			continue
		}
		pos := vert.Position
		d2 := pos.DistSqr(&center)
		if d2 > reachSqr {
			continue
		}
		d := math.Sqrt(d2)
		out.Weights[v] = weight(d, r, f, falloffFn)
		m.IncidentFaces(v, func(fid mesh.FaceID) bool {
			out.Faces.InsertFace(fid)
			return true
		})
	}
	return out
}
