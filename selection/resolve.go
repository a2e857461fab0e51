// Copyright © 2026 Freestyle Sculpt contributors.

package selection

import "github.com/madmaxio/freestyle-sculpt/mesh"

// ResolveToHalfEdges returns the union of: the half-edges already in s,
// every half-edge of every selected face, and every outgoing half-edge
// of every selected vertex (§4.E).
func ResolveToHalfEdges(m *mesh.Mesh, s *Set) map[mesh.HalfEdgeID]struct{} {
	out := make(map[mesh.HalfEdgeID]struct{}, len(s.HalfEdges))
	for h := range s.HalfEdges {
		out[h] = struct{}{}
	}
	for f := range s.Faces {
		if _, ok := m.Face(f); !ok {
			continue
		}
		for _, h := range m.FaceHalfEdges(f) {
			out[h] = struct{}{}
		}
	}
	for v := range s.Vertices {
		if _, ok := m.Vertex(v); !ok {
			continue
		}
		m.OutgoingHalfEdges(v, func(h mesh.HalfEdgeID) bool {
			out[h] = struct{}{}
			return true
		})
	}
	return out
}

// ResolveToVertices returns the union of: the vertices already in s, the
// start and end vertex of every selected half-edge, and every vertex of
// every selected face (§4.E).
func ResolveToVertices(m *mesh.Mesh, s *Set) map[mesh.VertexID]struct{} {
	out := make(map[mesh.VertexID]struct{}, len(s.Vertices))
	for v := range s.Vertices {
		out[v] = struct{}{}
	}
	for h := range s.HalfEdges {
		he, ok := m.HalfEdge(h)
		if !ok {
			continue
		}
		out[m.StartVertex(h)] = struct{}{}
		out[he.EndVertex] = struct{}{}
	}
	for f := range s.Faces {
		if _, ok := m.Face(f); !ok {
			continue
		}
		for _, v := range m.FaceVertices(f) {
			out[v] = struct{}{}
		}
	}
	return out
}
