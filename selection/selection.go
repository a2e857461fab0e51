// Copyright © 2026 Freestyle Sculpt contributors.

// Package selection holds sets of mesh element ids (vertices, half-edges,
// faces). The graph-aware resolution operators (resolve to vertices / to
// half-edges) live here too, as free functions taking a *mesh.Mesh,
// rather than as methods on it, so mesh never has to import selection.
//
// Grounded on sksmith-conway/conway's id-set-over-map style (a thin
// map[id]struct{} wrapper per kind), generalized to three disjoint kinds
// instead of one.
package selection

import "github.com/madmaxio/freestyle-sculpt/mesh"

// Set is three disjoint id sets: vertices, half-edges, faces.
type Set struct {
	Vertices  map[mesh.VertexID]struct{}
	HalfEdges map[mesh.HalfEdgeID]struct{}
	Faces     map[mesh.FaceID]struct{}
}

// New returns an empty selection.
func New() *Set {
	return &Set{
		Vertices:  make(map[mesh.VertexID]struct{}),
		HalfEdges: make(map[mesh.HalfEdgeID]struct{}),
		Faces:     make(map[mesh.FaceID]struct{}),
	}
}

// FromVertices returns a selection containing exactly the given vertices.
func FromVertices(ids ...mesh.VertexID) *Set {
	s := New()
	for _, id := range ids {
		s.InsertVertex(id)
	}
	return s
}

// FromFaces returns a selection containing exactly the given faces.
func FromFaces(ids ...mesh.FaceID) *Set {
	s := New()
	for _, id := range ids {
		s.InsertFace(id)
	}
	return s
}

func (s *Set) InsertVertex(id mesh.VertexID)   { s.Vertices[id] = struct{}{} }
func (s *Set) InsertHalfEdge(id mesh.HalfEdgeID) { s.HalfEdges[id] = struct{}{} }
func (s *Set) InsertFace(id mesh.FaceID)       { s.Faces[id] = struct{}{} }

func (s *Set) RemoveVertex(id mesh.VertexID)   { delete(s.Vertices, id) }
func (s *Set) RemoveHalfEdge(id mesh.HalfEdgeID) { delete(s.HalfEdges, id) }
func (s *Set) RemoveFace(id mesh.FaceID)       { delete(s.Faces, id) }

func (s *Set) HasVertex(id mesh.VertexID) bool   { _, ok := s.Vertices[id]; return ok }
func (s *Set) HasHalfEdge(id mesh.HalfEdgeID) bool { _, ok := s.HalfEdges[id]; return ok }
func (s *Set) HasFace(id mesh.FaceID) bool       { _, ok := s.Faces[id]; return ok }

// Clear empties every set in place, reusing the underlying maps (no
// allocation on steady-state reuse across brush strokes).
func (s *Set) Clear() {
	for k := range s.Vertices {
		delete(s.Vertices, k)
	}
	for k := range s.HalfEdges {
		delete(s.HalfEdges, k)
	}
	for k := range s.Faces {
		delete(s.Faces, k)
	}
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	out := New()
	for k := range s.Vertices {
		out.Vertices[k] = struct{}{}
	}
	for k := range s.HalfEdges {
		out.HalfEdges[k] = struct{}{}
	}
	for k := range s.Faces {
		out.Faces[k] = struct{}{}
	}
	return out
}

// Empty reports whether all three sets are empty.
func (s *Set) Empty() bool {
	return len(s.Vertices) == 0 && len(s.HalfEdges) == 0 && len(s.Faces) == 0
}
