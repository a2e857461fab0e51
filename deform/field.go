// Copyright © 2026 Freestyle Sculpt contributors.

// Package deform implements the deformation-field contract and its
// substep apply loop (§4.G): a Field describes, per vertex, the raw
// direction it wants to move at unit strength; apply resolves that into
// a bounded number of remesh-interleaved substeps so no single step can
// tear the surface past the target edge-length band.
package deform

import (
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/ray"
	"github.com/madmaxio/freestyle-sculpt/selector"
)

// SelectorFunc re-queries a brush's weighted selection around center
// (volume selectors) or starting from hitFace's vertex (surface
// selectors); Translate and Smooth call it on every pointer move and
// after every remesh pass so the selection tracks the moving brush and
// the mesh's changing topology.
type SelectorFunc func(m *mesh.Mesh, center lin.V3, hitFace mesh.FaceID) *selector.WeightedSelection

// Field is the shared contract every deformation brush implements.
type Field interface {
	// OnPointerDown may initialize internal state (anchor point,
	// initial selection) from the first hit.
	OnPointerDown(m *mesh.Mesh, fi ray.FaceIntersection)
	// OnPointerMove updates internal state from a cursor translation
	// and, if the ray still hits the mesh, the new hit. Returns true
	// iff Apply should be invoked this frame.
	OnPointerMove(m *mesh.Mesh, translation lin.V3, fi *ray.FaceIntersection) bool
	// VertexMovement returns the raw direction and magnitude vertex v
	// wishes to move at unit strength.
	VertexMovement(v mesh.VertexID, m *mesh.Mesh) lin.V3
	// Selection returns the field's current weighted selection.
	Selection() *selector.WeightedSelection
	// Weight returns v's cached falloff weight, or 0 if v is not
	// currently selected.
	Weight(v mesh.VertexID) float64
	// Requery refreshes the selection/weights against the field's
	// last-known center and hit face, used after a remesh pass has
	// changed which vertices exist.
	Requery(m *mesh.Mesh)
}

// base implements the Selection/Weight/Requery bookkeeping shared by
// every provided field, grounded on gazed-vu/physics/body.go's reused
// scratch-vector fields (v0, m0, m1) kept on the long-lived struct
// instead of allocated per call.
type base struct {
	query   SelectorFunc
	sel     *selector.WeightedSelection
	center  lin.V3
	hitFace mesh.FaceID
}

func (b *base) Selection() *selector.WeightedSelection { return b.sel }

func (b *base) Weight(v mesh.VertexID) float64 {
	if b.sel == nil {
		return 0
	}
	return b.sel.Weights[v]
}

func (b *base) Requery(m *mesh.Mesh) {
	if b.query == nil {
		return
	}
	b.sel = b.query(m, b.center, b.hitFace)
}

func (b *base) setAnchor(center lin.V3, hitFace mesh.FaceID, m *mesh.Mesh) {
	b.center, b.hitFace = center, hitFace
	b.Requery(m)
}
