// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

import (
	"github.com/madmaxio/freestyle-sculpt/bvh"
	"github.com/madmaxio/freestyle-sculpt/id"
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/sculptlog"
)

// halfedge returns the half-edge for h, or the zero value if h is stale.
// Internal helper: callers that must distinguish stale from zero-valued
// use Get directly.
func (m *Mesh) halfedge(h HalfEdgeID) HalfEdge {
	he, _ := m.halfedges.Get(id.Id(h))
	return he
}

func (m *Mesh) vertex(v VertexID) Vertex {
	vert, _ := m.vertices.Get(id.Id(v))
	return vert
}

func (m *Mesh) face(f FaceID) Face {
	face, _ := m.faces.Get(id.Id(f))
	return face
}

// Vertex returns v's attributes, or ok=false if v is stale.
func (m *Mesh) Vertex(v VertexID) (Vertex, bool) {
	vert, ok := m.vertices.Get(id.Id(v))
	if !ok {
		sculptlog.Debug("mesh: stale vertex id", "vertex", v)
	}
	return vert, ok
}

// HalfEdge returns h's fields, or ok=false if h is stale.
func (m *Mesh) HalfEdge(h HalfEdgeID) (HalfEdge, bool) {
	he, ok := m.halfedges.Get(id.Id(h))
	if !ok {
		sculptlog.Debug("mesh: stale halfedge id", "halfedge", h)
	}
	return he, ok
}

// Face returns f's fields, or ok=false if f is stale.
func (m *Mesh) Face(f FaceID) (Face, bool) {
	face, ok := m.faces.Get(id.Id(f))
	if !ok {
		sculptlog.Debug("mesh: stale face id", "face", f)
	}
	return face, ok
}

// StartVertex returns the vertex h departs from: self.twin.end_vertex.
func (m *Mesh) StartVertex(h HalfEdgeID) VertexID {
	return m.halfedge(m.halfedge(h).Twin).EndVertex
}

// Prev returns the half-edge before h in its face's triangle
// (next.next, valid only when h has a face).
func (m *Mesh) Prev(h HalfEdgeID) HalfEdgeID {
	he := m.halfedge(h)
	return m.halfedge(he.Next).Next
}

// CCWRotatedNeighbour returns prev.twin: the half-edge one step
// counter-clockwise around h's start vertex.
func (m *Mesh) CCWRotatedNeighbour(h HalfEdgeID) HalfEdgeID {
	return m.halfedge(m.Prev(h)).Twin
}

// CWRotatedNeighbour returns twin.next: the half-edge one step clockwise
// around h's start vertex.
func (m *Mesh) CWRotatedNeighbour(h HalfEdgeID) HalfEdgeID {
	return m.halfedge(m.halfedge(h).Twin).Next
}

// LengthSquared returns the squared length of h.
func (m *Mesh) LengthSquared(h HalfEdgeID) float64 {
	start := m.vertex(m.StartVertex(h)).Position
	end := m.vertex(m.halfedge(h).EndVertex).Position
	return start.DistSqr(&end)
}

// OutgoingHalfEdges walks clockwise via twin.next starting at v's
// outgoing half-edge until returning to start (§4.B), calling yield for
// each. Stops after at most as many steps as there are live half-edges
// (plus one) even on a malformed ring, so a broken invariant can never
// spin forever.
func (m *Mesh) OutgoingHalfEdges(v VertexID, yield func(HalfEdgeID) bool) {
	vert := m.vertex(v)
	if vert.Outgoing.Nil() {
		return
	}
	start := vert.Outgoing
	cur := start
	guard := m.halfedges.Len() + 1
	for i := 0; i < guard; i++ {
		if !yield(cur) {
			return
		}
		cur = m.CWRotatedNeighbour(cur)
		if cur.Nil() || cur == start {
			return
		}
	}
}

// Degree returns the number of edges incident to v.
func (m *Mesh) Degree(v VertexID) int {
	n := 0
	m.OutgoingHalfEdges(v, func(HalfEdgeID) bool { n++; return true })
	return n
}

// IsBoundaryVertex reports whether any half-edge outgoing from v is a
// boundary half-edge.
func (m *Mesh) IsBoundaryVertex(v VertexID) bool {
	boundary := false
	m.OutgoingHalfEdges(v, func(h HalfEdgeID) bool {
		if m.halfedge(h).IsBoundary() {
			boundary = true
			return false
		}
		return true
	})
	return boundary
}

// Neighbours calls yield once for every vertex adjacent to v.
func (m *Mesh) Neighbours(v VertexID, yield func(VertexID) bool) {
	m.OutgoingHalfEdges(v, func(h HalfEdgeID) bool {
		return yield(m.halfedge(h).EndVertex)
	})
}

// OneRing calls yield for the loop of half-edges opposite v, ordered
// CCW: for each outgoing non-boundary half-edge, its next (the far side
// of the incident triangle). OutgoingHalfEdges walks clockwise, so the
// far sides are collected and yielded in reverse.
func (m *Mesh) OneRing(v VertexID, yield func(HalfEdgeID) bool) {
	var ring []HalfEdgeID
	m.OutgoingHalfEdges(v, func(h HalfEdgeID) bool {
		he := m.halfedge(h)
		if !he.IsBoundary() {
			ring = append(ring, he.Next)
		}
		return true
	})
	for i := len(ring) - 1; i >= 0; i-- {
		if !yield(ring[i]) {
			return
		}
	}
}

// IncomingHalfEdges calls yield for the twin of every outgoing half-edge
// of v.
func (m *Mesh) IncomingHalfEdges(v VertexID, yield func(HalfEdgeID) bool) {
	m.OutgoingHalfEdges(v, func(h HalfEdgeID) bool {
		return yield(m.halfedge(h).Twin)
	})
}

// IncidentFaces calls yield for every distinct face touching v.
func (m *Mesh) IncidentFaces(v VertexID, yield func(FaceID) bool) {
	m.OutgoingHalfEdges(v, func(h HalfEdgeID) bool {
		f := m.halfedge(h).Face
		if f.Nil() {
			return true
		}
		return yield(f)
	})
}

// FaceHalfEdges returns the three half-edges bounding f, in face order.
func (m *Mesh) FaceHalfEdges(f FaceID) [3]HalfEdgeID {
	h0 := m.face(f).HalfEdge
	h1 := m.halfedge(h0).Next
	h2 := m.halfedge(h1).Next
	return [3]HalfEdgeID{h0, h1, h2}
}

// FaceVertices returns the three vertices of f, in face order.
func (m *Mesh) FaceVertices(f FaceID) [3]VertexID {
	hs := m.FaceHalfEdges(f)
	return [3]VertexID{
		m.StartVertex(hs[0]),
		m.halfedge(hs[0]).EndVertex,
		m.halfedge(hs[1]).EndVertex,
	}
}

// FaceCentroid returns the average of f's three vertex positions.
func (m *Mesh) FaceCentroid(f FaceID) lin.V3 {
	vs := m.FaceVertices(f)
	a, b, c := m.vertex(vs[0]).Position, m.vertex(vs[1]).Position, m.vertex(vs[2]).Position
	out := lin.NewV3().Add(&a, &b)
	out.Add(out, &c)
	out.Scale(out, 1.0/3.0)
	return *out
}

// FaceAABB returns the bounding box of f's triangle.
func (m *Mesh) FaceAABB(f FaceID) (bvh.AABB, bool) { return m.faceAABB(f) }

func (m *Mesh) faceAABB(f FaceID) (bvh.AABB, bool) {
	face, ok := m.faces.Get(id.Id(f))
	if !ok {
		return bvh.AABB{}, false
	}
	_ = face
	vs := m.FaceVertices(f)
	a, b, c := m.vertex(vs[0]).Position, m.vertex(vs[1]).Position, m.vertex(vs[2]).Position
	return bvh.FromPoints(a, b, c), true
}

// FaceTriangle returns f's three corner positions, used by bvh.TriangleAt
// adapters.
func (m *Mesh) FaceTriangle(f FaceID) (lin.V3, lin.V3, lin.V3, bool) {
	if !m.faces.Contains(id.Id(f)) {
		return lin.V3{}, lin.V3{}, lin.V3{}, false
	}
	vs := m.FaceVertices(f)
	return m.vertex(vs[0]).Position, m.vertex(vs[1]).Position, m.vertex(vs[2]).Position, true
}

// FaceByIndex resolves a BVH leaf key (face.Index) back to a FaceID.
// The index table is kept current as faces are inserted and removed, so
// this resolves keys between rebuilds too.
func (m *Mesh) FaceByIndex(idx int) (FaceID, bool) {
	if idx < 0 || idx >= len(m.faceByIdx) {
		return 0, false
	}
	fid := m.faceByIdx[idx]
	if !m.faces.Contains(id.Id(fid)) {
		return 0, false
	}
	return fid, true
}

// AllVertices calls yield for every live vertex id.
func (m *Mesh) AllVertices(yield func(VertexID, Vertex) bool) {
	m.vertices.All(func(i id.Id, v Vertex) bool { return yield(VertexID(i), v) })
}

// AllFaces calls yield for every live face id.
func (m *Mesh) AllFaces(yield func(FaceID, Face) bool) {
	m.faces.All(func(i id.Id, f Face) bool { return yield(FaceID(i), f) })
}

// AllHalfEdges calls yield for every live half-edge id.
func (m *Mesh) AllHalfEdges(yield func(HalfEdgeID, HalfEdge) bool) {
	m.halfedges.All(func(i id.Id, h HalfEdge) bool { return yield(HalfEdgeID(i), h) })
}
