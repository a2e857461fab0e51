// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

import (
	"github.com/madmaxio/freestyle-sculpt/bvh"
	"github.com/madmaxio/freestyle-sculpt/id"
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/sculptlog"
)

// edgeKey is an ordered (start, end) vertex pair used to find a
// half-edge's twin during the build, grounded on
// other_examples/c576bc9d_ajcurley-meshx's shared-edge hash-map pairing
// technique.
type edgeKey struct {
	start, end VertexID
}

// BuildFromIndexedTriangles replaces the mesh's contents with the graph
// described by positions and faceIndices (3 indices per triangle,
// indexing into positions). Boundary half-edges are inserted explicitly
// so invariant 2 (every half-edge has a twin) holds even along open
// edges — the open question §9 flags as inconsistently handled upstream.
func BuildFromIndexedTriangles(positions [][3]float64, faceIndices []uint32) *Mesh {
	m := New()
	if len(faceIndices)%3 != 0 {
		sculptlog.Error("mesh: face index count not a multiple of 3", "count", len(faceIndices))
		return m
	}

	vertexIDs := make([]VertexID, len(positions))
	for i, p := range positions {
		vertexIDs[i] = m.InsertVertex(p)
	}

	type sideRecord struct {
		he         HalfEdgeID
		start, end VertexID
	}
	byEdge := make(map[edgeKey]sideRecord, len(faceIndices))

	triCount := len(faceIndices) / 3
	for t := 0; t < triCount; t++ {
		ia, ib, ic := faceIndices[3*t], faceIndices[3*t+1], faceIndices[3*t+2]
		va, vb, vc := vertexIDs[ia], vertexIDs[ib], vertexIDs[ic]

		faceID := m.insertFace()
		heAB := m.insertHalfEdge(vb, faceID)
		heBC := m.insertHalfEdge(vc, faceID)
		heCA := m.insertHalfEdge(va, faceID)
		m.setNext(heAB, heBC)
		m.setNext(heBC, heCA)
		m.setNext(heCA, heAB)
		m.setFaceHalfEdge(faceID, heAB)

		m.setOutgoingIfUnset(va, heAB)
		m.setOutgoingIfUnset(vb, heBC)
		m.setOutgoingIfUnset(vc, heCA)

		byEdge[edgeKey{va, vb}] = sideRecord{heAB, va, vb}
		byEdge[edgeKey{vb, vc}] = sideRecord{heBC, vb, vc}
		byEdge[edgeKey{vc, va}] = sideRecord{heCA, vc, va}
	}

	// outgoingBoundary[v] is the boundary half-edge starting at v, built
	// as boundary half-edges are created so the chaining pass below never
	// needs to re-walk the graph to find them.
	outgoingBoundary := make(map[VertexID]HalfEdgeID)

	for key, rec := range byEdge {
		if !m.halfedge(rec.he).Twin.Nil() {
			continue
		}
		reverse := edgeKey{key.end, key.start}
		if other, ok := byEdge[reverse]; ok {
			m.linkTwins(rec.he, other.he)
			continue
		}
		boundary := m.insertBoundaryHalfEdge(rec.start)
		m.linkTwins(rec.he, boundary)
		outgoingBoundary[rec.end] = boundary
		m.setOutgoingPreferBoundary(rec.end, boundary)
	}

	for _, boundary := range outgoingBoundary {
		endVertex := m.halfedge(boundary).EndVertex
		next, ok := outgoingBoundary[endVertex]
		if !ok {
			sculptlog.Error("mesh: unclosed boundary loop", "vertex", endVertex)
			continue
		}
		m.setNext(boundary, next)
	}

	m.RecountFaces()
	m.RecomputeNormals()
	return m
}

func v3(p [3]float64) lin.V3 { return lin.V3{X: p[0], Y: p[1], Z: p[2]} }

// InsertVertex adds a free-standing vertex (no connectivity yet) and
// returns its id; used by both the build path and subdivide.
func (m *Mesh) InsertVertex(position [3]float64) VertexID {
	vid := m.vertices.InsertWithKey(func(i id.Id) Vertex {
		return Vertex{Position: v3(position)}
	})
	return VertexID(vid)
}

// insertFace allocates a face and reserves a BVH leaf key for it (reused
// from a freed slot when one is available), so the key assigned here
// stays stable for the face's lifetime even across incremental edits
// that never call RecountFaces.
func (m *Mesh) insertFace() FaceID {
	fid := m.faces.InsertWithKey(func(i id.Id) Face {
		return Face{self: FaceID(i)}
	})
	idx := m.allocFaceIndex()
	face := m.faces.GetMut(id.Id(fid))
	face.Index = idx
	m.faceByIdx[idx] = FaceID(fid)
	return FaceID(fid)
}

func (m *Mesh) allocFaceIndex() int {
	if n := len(m.freeIndex); n > 0 {
		idx := m.freeIndex[n-1]
		m.freeIndex = m.freeIndex[:n-1]
		return idx
	}
	idx := len(m.faceByIdx)
	m.faceByIdx = append(m.faceByIdx, 0)
	return idx
}

// removeFace frees f's allocator slot, its BVH leaf and its index slot.
func (m *Mesh) removeFace(f FaceID) {
	idx := m.face(f).Index
	m.faces.Remove(id.Id(f))
	m.faceByIdx[idx] = 0
	m.freeIndex = append(m.freeIndex, idx)
	m.bv.Remove(idx)
}

func (m *Mesh) insertHalfEdge(end VertexID, face FaceID) HalfEdgeID {
	return HalfEdgeID(m.halfedges.Insert(HalfEdge{EndVertex: end, Face: face}))
}

func (m *Mesh) insertBoundaryHalfEdge(end VertexID) HalfEdgeID {
	return HalfEdgeID(m.halfedges.Insert(HalfEdge{EndVertex: end}))
}

func (m *Mesh) setNext(h, next HalfEdgeID) {
	he := m.halfedges.GetMut(id.Id(h))
	he.Next = next
}

func (m *Mesh) setFaceHalfEdge(f FaceID, h HalfEdgeID) {
	face := m.faces.GetMut(id.Id(f))
	face.HalfEdge = h
}

func (m *Mesh) setOutgoingIfUnset(v VertexID, h HalfEdgeID) {
	vert := m.vertices.GetMut(id.Id(v))
	if vert.Outgoing.Nil() {
		vert.Outgoing = h
	}
}

// setOutgoingPreferBoundary unconditionally installs h as v's outgoing
// half-edge; called only with boundary half-edges, which invariant 4
// requires vertex.outgoing to point to when one exists.
func (m *Mesh) setOutgoingPreferBoundary(v VertexID, h HalfEdgeID) {
	vert := m.vertices.GetMut(id.Id(v))
	vert.Outgoing = h
}

func (m *Mesh) linkTwins(a, b HalfEdgeID) {
	ha := m.halfedges.GetMut(id.Id(a))
	hb := m.halfedges.GetMut(id.Id(b))
	ha.Twin = b
	hb.Twin = a
}

// RecountFaces reassigns every live face's Index contiguously (the order
// is unspecified, per §5) and rebuilds the BVH from scratch over the new
// indices, per §4.D.
func (m *Mesh) RecountFaces() {
	m.faceByIdx = m.faceByIdx[:0]
	m.freeIndex = m.freeIndex[:0]
	leaves := make([]bvh.Leaf, 0, m.faces.Len())
	m.faces.All(func(i id.Id, f Face) bool {
		idx := len(m.faceByIdx)
		face := m.faces.GetMut(i)
		face.Index = idx
		m.faceByIdx = append(m.faceByIdx, FaceID(i))
		if box, ok := m.faceAABB(FaceID(i)); ok {
			leaves = append(leaves, bvh.Leaf{Key: idx, Box: box})
		}
		return true
	})
	m.bv.ClearAndRebuild(leaves, looseMargin)
}

const looseMargin = 1e-4
