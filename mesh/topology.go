// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

import (
	"github.com/madmaxio/freestyle-sculpt/id"
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/sculptlog"
)

func (m *Mesh) insertVertexAt(pos, normal lin.V3, hasNormal bool) VertexID {
	vid := m.vertices.InsertWithKey(func(i id.Id) Vertex {
		return Vertex{Position: pos, Normal: normal, HasNormal: hasNormal}
	})
	return VertexID(vid)
}

// MoveVertex relocates v to newPos, marking its incident faces for a
// BVH refit and its normal stale (cleared, so Export's "recompute if
// any vertex lacks one" rule per §6 picks it up) — used by deformation
// fields' substep loop.
func (m *Mesh) MoveVertex(v VertexID, newPos lin.V3) {
	vert := m.vertices.GetMut(id.Id(v))
	if vert == nil {
		return
	}
	vert.Position = newPos
	vert.HasNormal = false
	m.IncidentFaces(v, func(f FaceID) bool {
		m.scheduleRefit(f)
		return true
	})
}

func (m *Mesh) scheduleRefit(f FaceID) {
	if f.Nil() {
		return
	}
	if face, ok := m.faces.Get(id.Id(f)); ok {
		m.bv.PreUpdateOrInsert(face.Index)
	}
}

// SubdivideEdge splits h's undirected edge at its midpoint, inserting a
// new vertex and, on each side that has a face, re-triangulating it by
// adding a chord from the midpoint to the opposite vertex (§4.C). Returns
// every half-edge created, including the two that replace h/h.twin. err
// is a non-nil *InvariantError only when h has no twin (§7); a stale h
// is a silent no-op (nil, nil), and a zero-length edge is skipped with a
// Warn log, also returning (nil, nil).
func (m *Mesh) SubdivideEdge(h HalfEdgeID) ([]HalfEdgeID, error) {
	he, ok := m.halfedges.Get(id.Id(h))
	if !ok {
		return nil, nil
	}
	t := he.Twin
	if t.Nil() {
		invErr := &InvariantError{Invariant: "half-edge has no twin", HalfEdge: h}
		sculptlog.Error(invErr.Error())
		return nil, invErr
	}
	het := m.halfedge(t)

	a := m.StartVertex(h)
	bv := he.EndVertex
	posA, posB := m.vertex(a).Position, m.vertex(bv).Position
	if posA.DistSqr(&posB) <= lin.Epsilon {
		sculptlog.Warn("mesh: skipped subdividing zero-length edge", "halfedge", h)
		return nil, nil
	}
	midPos := lin.NewV3().Lerp(&posA, &posB, 0.5)

	na, hasA := m.vertex(a).Normal, m.vertex(a).HasNormal
	nb, hasB := m.vertex(bv).Normal, m.vertex(bv).HasNormal
	var midNormal lin.V3
	hasMidNormal := hasA && hasB
	if hasMidNormal {
		midNormal = *lin.NewV3().Lerp(&na, &nb, 0.5).Unit()
	}
	mid := m.insertVertexAt(*midPos, midNormal, hasMidNormal)

	hFace := he.Face
	tFace := het.Face
	hOldNext := he.Next
	tOldNext := het.Next

	h2 := m.insertHalfEdge(bv, hFace)
	t2 := m.insertHalfEdge(a, tFace)

	m.halfedges.GetMut(id.Id(h)).EndVertex = mid
	m.halfedges.GetMut(id.Id(t)).EndVertex = mid

	m.halfedges.GetMut(id.Id(h)).Twin = t2
	m.halfedges.GetMut(id.Id(t2)).Twin = h
	m.halfedges.GetMut(id.Id(h2)).Twin = t
	m.halfedges.GetMut(id.Id(t)).Twin = h2

	created := []HalfEdgeID{h2, t2}

	// M's outgoing prefers a boundary half-edge, since a boundary vertex's
	// outgoing must be a boundary half-edge (invariant 4).
	mv := m.vertices.GetMut(id.Id(mid))
	mv.Outgoing = h2
	if hFace.Nil() {
		mv.Outgoing = h2
	} else if tFace.Nil() {
		mv.Outgoing = t2
	}

	if hFace.Nil() {
		m.setNext(h, h2)
		m.setNext(h2, hOldNext)
	} else {
		x := hOldNext
		y := m.halfedge(x).Next
		w := m.halfedge(x).EndVertex

		newFace := m.insertFace()
		chord1 := m.insertHalfEdge(w, hFace)
		chord2 := m.insertHalfEdge(mid, newFace)
		m.halfedges.GetMut(id.Id(chord1)).Twin = chord2
		m.halfedges.GetMut(id.Id(chord2)).Twin = chord1

		m.setNext(h, chord1)
		m.setNext(chord1, y)
		m.setNext(y, h)
		m.setFaceHalfEdge(hFace, h)

		m.halfedges.GetMut(id.Id(h2)).Face = newFace
		m.halfedges.GetMut(id.Id(x)).Face = newFace
		m.setNext(h2, x)
		m.setNext(x, chord2)
		m.setNext(chord2, h2)
		m.setFaceHalfEdge(newFace, h2)

		created = append(created, chord1, chord2)
		m.scheduleRefit(hFace)
		m.scheduleRefit(newFace)
	}

	if tFace.Nil() {
		m.setNext(t, t2)
		m.setNext(t2, tOldNext)
	} else {
		x := tOldNext
		y := m.halfedge(x).Next
		w := m.halfedge(x).EndVertex

		newFace := m.insertFace()
		chord3 := m.insertHalfEdge(w, tFace)
		chord4 := m.insertHalfEdge(mid, newFace)
		m.halfedges.GetMut(id.Id(chord3)).Twin = chord4
		m.halfedges.GetMut(id.Id(chord4)).Twin = chord3

		m.setNext(t, chord3)
		m.setNext(chord3, y)
		m.setNext(y, t)
		m.setFaceHalfEdge(tFace, t)

		m.halfedges.GetMut(id.Id(t2)).Face = newFace
		m.halfedges.GetMut(id.Id(x)).Face = newFace
		m.setNext(t2, x)
		m.setNext(x, chord4)
		m.setNext(chord4, t2)
		m.setFaceHalfEdge(newFace, t2)

		created = append(created, chord3, chord4)
		m.scheduleRefit(tFace)
		m.scheduleRefit(newFace)
	}

	return created, nil
}

// CollapseEdge merges h's two endpoints at their midpoint and removes
// the (up to two) triangles incident to h, per §4.C. Returns the ids
// destroyed so callers can prune their working sets; ok is false if h
// was stale or collapsing it is degenerate (no-op, nothing mutated).
// err is a non-nil *InvariantError only when h has no twin (§7); every
// other no-op path (stale h, a==bv) leaves err nil per the StaleId/
// DegenerateGeometry policy of silent absence.
func (m *Mesh) CollapseEdge(h HalfEdgeID) (removedVertices []VertexID, removedHalfEdges []HalfEdgeID, removedFaces []FaceID, ok bool, err error) {
	he, exists := m.halfedges.Get(id.Id(h))
	if !exists {
		return nil, nil, nil, false, nil
	}
	t := he.Twin
	if t.Nil() {
		invErr := &InvariantError{Invariant: "half-edge has no twin", HalfEdge: h}
		sculptlog.Error(invErr.Error())
		return nil, nil, nil, false, invErr
	}
	a := m.StartVertex(h)
	bv := he.EndVertex
	if a == bv {
		return nil, nil, nil, false, nil
	}

	posA, posB := m.vertex(a).Position, m.vertex(bv).Position
	mid := lin.NewV3().Lerp(&posA, &posB, 0.5)
	av := m.vertices.GetMut(id.Id(a))
	av.Position = *mid
	if av.HasNormal && m.vertex(bv).HasNormal {
		nb := m.vertex(bv).Normal
		avg := lin.NewV3().Add(&av.Normal, &nb)
		avg.Unit()
		av.Normal = *avg
	}

	var incoming []HalfEdgeID
	m.IncomingHalfEdges(bv, func(hh HalfEdgeID) bool { incoming = append(incoming, hh); return true })
	for _, hh := range incoming {
		if hh == h || hh == t {
			continue
		}
		m.halfedges.GetMut(id.Id(hh)).EndVertex = a
	}

	var replacement HalfEdgeID
	removeSide := func(side HalfEdgeID) {
		s := m.halfedge(side)
		if s.Face.Nil() {
			return
		}
		next := s.Next
		prev := m.Prev(side)
		nextTwin := m.halfedge(next).Twin
		prevTwin := m.halfedge(prev).Twin

		startOfNext := m.StartVertex(next)
		startOfPrev := m.StartVertex(prev)
		nv := m.vertices.GetMut(id.Id(startOfNext))
		if nv.Outgoing == next {
			nv.Outgoing = prevTwin
		}
		pv := m.vertices.GetMut(id.Id(startOfPrev))
		if pv.Outgoing == prev {
			pv.Outgoing = nextTwin
		}

		m.halfedges.GetMut(id.Id(nextTwin)).Twin = prevTwin
		m.halfedges.GetMut(id.Id(prevTwin)).Twin = nextTwin

		if startOfNext == a {
			replacement = prevTwin
		} else if startOfPrev == a {
			replacement = nextTwin
		}

		m.removeFace(s.Face)
		removedFaces = append(removedFaces, s.Face)
		m.halfedges.Remove(id.Id(next))
		m.halfedges.Remove(id.Id(prev))
		removedHalfEdges = append(removedHalfEdges, next, prev)
	}

	removeSide(h)
	removeSide(t)

	m.halfedges.Remove(id.Id(h))
	m.halfedges.Remove(id.Id(t))
	removedHalfEdges = append(removedHalfEdges, h, t)

	m.vertices.Remove(id.Id(bv))
	removedVertices = append(removedVertices, bv)

	if av.Outgoing == h || av.Outgoing == t || !m.halfedges.Contains(id.Id(av.Outgoing)) {
		if replacement.valid() {
			av.Outgoing = replacement
		} else {
			av.Outgoing = m.scanOutgoing(a)
		}
	}

	fv, fhe, ff := m.cleanupFlaps(a)
	removedVertices = append(removedVertices, fv...)
	removedHalfEdges = append(removedHalfEdges, fhe...)
	removedFaces = append(removedFaces, ff...)

	if m.vertices.Contains(id.Id(a)) {
		m.IncidentFaces(a, func(f FaceID) bool { m.scheduleRefit(f); return true })
	}

	return removedVertices, removedHalfEdges, removedFaces, true, nil
}

func (h HalfEdgeID) valid() bool { return !h.Nil() }

// scanOutgoing is the fallback path when no local replacement for a
// vertex's outgoing half-edge was found during collapse (only reachable
// when both triangles on a collapsed edge were themselves boundary-
// adjacent in an unusual way); O(live half-edges), acceptable since it
// is not on the steady-state per-edit path.
func (m *Mesh) scanOutgoing(v VertexID) HalfEdgeID {
	var found HalfEdgeID
	m.halfedges.All(func(i id.Id, he HalfEdge) bool {
		cand := HalfEdgeID(i)
		if m.StartVertex(cand) == v {
			found = cand
			return false
		}
		return true
	})
	return found
}

// cleanupFlaps removes degenerate face pairs left behind by a collapse:
// two faces incident to v that share all three vertices (§4.C).
func (m *Mesh) cleanupFlaps(v VertexID) (removedVertices []VertexID, removedHalfEdges []HalfEdgeID, removedFaces []FaceID) {
	var faces []FaceID
	m.IncidentFaces(v, func(f FaceID) bool { faces = append(faces, f); return true })

	seen := map[FaceID]bool{}
	for _, f := range faces {
		if seen[f] || !m.faces.Contains(id.Id(f)) {
			continue
		}
		fv := m.FaceVertices(f)
		for _, g := range faces {
			if g == f || seen[g] || !m.faces.Contains(id.Id(g)) {
				continue
			}
			gv := m.FaceVertices(g)
			if sameVertexSet(fv, gv) {
				seen[f], seen[g] = true, true
				dv, dhe := m.DeleteFace(f)
				removedVertices = append(removedVertices, dv...)
				removedHalfEdges = append(removedHalfEdges, dhe...)
				removedFaces = append(removedFaces, f)
				dv2, dhe2 := m.DeleteFace(g)
				removedVertices = append(removedVertices, dv2...)
				removedHalfEdges = append(removedHalfEdges, dhe2...)
				removedFaces = append(removedFaces, g)
				break
			}
		}
	}
	return removedVertices, removedHalfEdges, removedFaces
}

func sameVertexSet(a, b [3]VertexID) bool {
	match := func(x VertexID) bool { return x == b[0] || x == b[1] || x == b[2] }
	return match(a[0]) && match(a[1]) && match(a[2])
}

// DeleteFace removes f: each boundary-adjacent half-edge is deleted
// along with its twin; each interior half-edge is demoted to a boundary
// half-edge instead. Any vertex left with no outgoing half-edge is
// deleted (§4.C).
func (m *Mesh) DeleteFace(f FaceID) (removedVertices []VertexID, removedHalfEdges []HalfEdgeID) {
	if !m.faces.Contains(id.Id(f)) {
		return nil, nil
	}
	hs := m.FaceHalfEdges(f)
	vs := m.FaceVertices(f)

	for _, h := range hs {
		he := m.halfedge(h)
		twin := m.halfedge(he.Twin)
		if twin.IsBoundary() {
			m.halfedges.Remove(id.Id(h))
			m.halfedges.Remove(id.Id(he.Twin))
			removedHalfEdges = append(removedHalfEdges, h, he.Twin)
		} else {
			m.halfedges.GetMut(id.Id(h)).Face = 0
			m.halfedges.GetMut(id.Id(h)).Next = 0
		}
	}
	m.removeFace(f)

	for _, v := range vs {
		if !m.vertices.Contains(id.Id(v)) {
			continue
		}
		vert := m.vertices.GetMut(id.Id(v))
		if !m.halfedges.Contains(id.Id(vert.Outgoing)) {
			vert.Outgoing = m.scanOutgoing(v)
		}
		if vert.Outgoing.Nil() {
			m.vertices.Remove(id.Id(v))
			removedVertices = append(removedVertices, v)
		}
	}

	// Demoted boundary half-edges (Next cleared above) need their Next
	// chained to close the new boundary loop.
	for _, h := range hs {
		he, ok := m.halfedges.Get(id.Id(h))
		if !ok || !he.Face.Nil() || !he.Next.Nil() {
			continue
		}
		endV := he.EndVertex
		next, found := m.findBoundaryOutgoingFrom(endV)
		if found {
			m.setNext(h, next)
		}
	}

	return removedVertices, removedHalfEdges
}

// findBoundaryOutgoingFrom rotates around v (via twin.next) looking for
// a boundary half-edge starting at v.
func (m *Mesh) findBoundaryOutgoingFrom(v VertexID) (HalfEdgeID, bool) {
	var found HalfEdgeID
	ok := false
	m.OutgoingHalfEdges(v, func(h HalfEdgeID) bool {
		if m.halfedge(h).IsBoundary() {
			found, ok = h, true
			return false
		}
		return true
	})
	return found, ok
}
