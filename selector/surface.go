// Copyright © 2026 Freestyle Sculpt contributors.

package selector

import (
	"math"

	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
)

// SurfaceSphereWithFalloff walks the 1-ring graph breadth-first from
// start, the hit face's end-vertex, admitting a vertex only when within
// squared distance (r+f)² of center (§4.F). maxVertices bounds the walk
// (0 means unbounded) — a supplement guarding against an unbounded BFS
// when r+f spans much of the mesh.
func SurfaceSphereWithFalloff(m *mesh.Mesh, start mesh.VertexID, center lin.V3, r, f float64, falloffFn FalloffFn, maxVertices int) *WeightedSelection {
	out := newWeightedSelection()
	if _, ok := m.Vertex(start); !ok {
		return out
	}

	reach := r + f
	reachSqr := reach * reach

	visited := map[mesh.VertexID]struct{}{start: {}}
	queue := []mesh.VertexID{start}

	admit := func(v mesh.VertexID) bool {
		vert, ok := m.Vertex(v)
		if !ok {
			return false
		}
		pos := vert.Position
		d2 := pos.DistSqr(&center)
		if d2 > reachSqr {
			return false
		}
		out.Weights[v] = weight(math.Sqrt(d2), r, f, falloffFn)
		m.IncidentFaces(v, func(fid mesh.FaceID) bool {
			out.Faces.InsertFace(fid)
			return true
		})
		return true
	}

	if !admit(start) {
		return out
	}

	for len(queue) > 0 {
		if maxVertices > 0 && len(visited) >= maxVertices {
			break
		}
		v := queue[0]
		queue = queue[1:]

		var neighbours []mesh.VertexID
		m.Neighbours(v, func(n mesh.VertexID) bool {
			neighbours = append(neighbours, n)
			return true
		})
		for _, n := range neighbours {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			if maxVertices > 0 && len(visited) > maxVertices {
				break
			}
			if admit(n) {
				queue = append(queue, n)
			}
		}
	}
	return out
}
