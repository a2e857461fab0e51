// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

import (
	"golang.org/x/exp/slices"

	"github.com/madmaxio/freestyle-sculpt/id"
)

// Workspace holds the candidate-length scratch maps the adaptive remesh
// passes need. Callers reuse one Workspace across every substep of a
// sculpt gesture so the candidate maps are not reallocated (§5); the
// topology operators still allocate their result slices.
type Workspace struct {
	candidates map[HalfEdgeID]float64
	seenTwin   map[HalfEdgeID]bool
	sortScratch []candidatePair // reused by pickExtremum, never grown past the candidate count.
}

// candidatePair is one (half-edge, cached squared length) entry sorted
// by pickExtremum.
type candidatePair struct {
	h HalfEdgeID
	l2 float64
}

// NewWorkspace returns an empty, ready-to-reuse Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		candidates: make(map[HalfEdgeID]float64),
		seenTwin:   make(map[HalfEdgeID]bool),
	}
}

func (w *Workspace) reset() {
	for k := range w.candidates {
		delete(w.candidates, k)
	}
	for k := range w.seenTwin {
		delete(w.seenTwin, k)
	}
}

// SubdivideUntilBelow repeatedly subdivides the longest half-edge in sel
// until every half-edge reachable from it has length² ≤ lmax2 (§4.C).
// sel is mutated in place: every half-edge SubdivideEdge produces (and
// its twin) is inserted, matching the selection-growth the spec
// describes. Terminates because every split strictly shortens both
// halves of the edge it replaces.
func (m *Mesh) SubdivideUntilBelow(ws *Workspace, lmax2 float64, sel map[HalfEdgeID]struct{}) {
	ws.reset()
	for h := range sel {
		if !m.halfedges.Contains(id.Id(h)) {
			continue
		}
		twin := m.halfedge(h).Twin
		if ws.seenTwin[twin] {
			continue
		}
		if l2 := m.LengthSquared(h); l2 > lmax2 {
			ws.candidates[h] = l2
			ws.seenTwin[h] = true
		}
	}

	for len(ws.candidates) > 0 {
		best, _, found := pickExtremum(ws, false)
		if !found {
			break
		}
		delete(ws.candidates, best)
		if !m.halfedges.Contains(id.Id(best)) {
			continue
		}
		created, _ := m.SubdivideEdge(best)
		for _, nh := range created {
			m.trackSubdivided(sel, ws, nh, lmax2)
		}
		if m.halfedges.Contains(id.Id(best)) {
			m.trackSubdivided(sel, ws, best, lmax2)
		}
	}
}

func (m *Mesh) trackSubdivided(sel map[HalfEdgeID]struct{}, ws *Workspace, h HalfEdgeID, lmax2 float64) {
	sel[h] = struct{}{}
	if twin := m.halfedge(h).Twin; twin.valid() {
		sel[twin] = struct{}{}
	}
	if l2 := m.LengthSquared(h); l2 > lmax2 {
		ws.candidates[h] = l2
	} else {
		delete(ws.candidates, h)
	}
}

// CollapseUntilAbove repeatedly collapses the shortest half-edge in sel
// until every surviving half-edge reachable from it has length² ≥ lmin2,
// except where both endpoints would otherwise be deleted (§4.C/§8
// property 6). selV/selF are pruned of any id a collapse destroys.
func (m *Mesh) CollapseUntilAbove(ws *Workspace, lmin2 float64, selHE map[HalfEdgeID]struct{}, selV map[VertexID]struct{}, selF map[FaceID]struct{}) {
	ws.reset()
	for h := range selHE {
		if !m.halfedges.Contains(id.Id(h)) {
			continue
		}
		twin := m.halfedge(h).Twin
		if ws.seenTwin[twin] {
			continue
		}
		if l2 := m.LengthSquared(h); l2 < lmin2 {
			ws.candidates[h] = l2
			ws.seenTwin[h] = true
		}
	}

	for len(ws.candidates) > 0 {
		best, _, found := pickExtremum(ws, true)
		if !found {
			break
		}
		delete(ws.candidates, best)
		if !m.halfedges.Contains(id.Id(best)) {
			continue
		}
		survivor := m.StartVertex(best)

		rv, rhe, rf, ok, _ := m.CollapseEdge(best)
		if !ok {
			continue
		}
		for _, v := range rv {
			delete(selV, v)
		}
		for _, hh := range rhe {
			delete(selHE, hh)
			delete(ws.candidates, hh)
		}
		for _, f := range rf {
			delete(selF, f)
		}

		if !m.vertices.Contains(id.Id(survivor)) {
			continue
		}
		m.OutgoingHalfEdges(survivor, func(hh HalfEdgeID) bool {
			selHE[hh] = struct{}{}
			l2 := m.LengthSquared(hh)
			if l2 < lmin2 {
				ws.candidates[hh] = l2
			} else {
				delete(ws.candidates, hh)
			}
			return true
		})
	}
}

// pickExtremum returns the half-edge with the smallest cached length
// (shortest=true) or largest (shortest=false) among ws.candidates, by
// sorting a reused scratch slice with x/exp/slices.SortFunc. Map
// iteration order is unspecified by design (§5): any tie-break among
// equal lengths is acceptable as long as progress is made.
func pickExtremum(ws *Workspace, shortest bool) (HalfEdgeID, float64, bool) {
	ws.sortScratch = ws.sortScratch[:0]
	for h, l2 := range ws.candidates {
		ws.sortScratch = append(ws.sortScratch, candidatePair{h, l2})
	}
	if len(ws.sortScratch) == 0 {
		return 0, 0, false
	}
	slices.SortFunc(ws.sortScratch, func(a, b candidatePair) int {
		switch {
		case a.l2 < b.l2:
			return -1
		case a.l2 > b.l2:
			return 1
		default:
			return 0
		}
	})
	if shortest {
		best := ws.sortScratch[0]
		return best.h, best.l2, true
	}
	best := ws.sortScratch[len(ws.sortScratch)-1]
	return best.h, best.l2, true
}
