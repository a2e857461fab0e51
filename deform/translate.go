// Copyright © 2026 Freestyle Sculpt contributors.

package deform

import (
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/ray"
)

// Translate moves every selected vertex by the current pointer move's
// cursor translation (§4.G) — Apply applies it once per call, so the
// stored delta must not accumulate across calls. The anchor point does
// accumulate: on a move that misses the mesh, it is re-projected onto
// the surface rather than dropped.
type Translate struct {
	base
	translation lin.V3
}

// NewTranslate builds a Translate field that re-queries its selection
// with query.
func NewTranslate(query SelectorFunc) *Translate {
	return &Translate{base: base{query: query}}
}

func (t *Translate) OnPointerDown(m *mesh.Mesh, fi ray.FaceIntersection) {
	t.translation = lin.V3{}
	t.setAnchor(fi.Point, fi.Face, m)
}

func (t *Translate) OnPointerMove(m *mesh.Mesh, translation lin.V3, fi *ray.FaceIntersection) bool {
	t.translation = translation
	anchor := *lin.Plus(&t.center, &translation)

	var hitPoint lin.V3
	var hitFace mesh.FaceID
	if fi != nil {
		hitPoint, hitFace = fi.Point, fi.Face
	} else {
		proj, ok := ray.Project(m, anchor)
		if !ok {
			return false
		}
		hitPoint, hitFace = proj.Point, proj.Face
	}
	t.setAnchor(hitPoint, hitFace, m)
	return true
}

// VertexMovement returns the stored translation for every vertex —
// Translate moves the whole selection rigidly.
func (t *Translate) VertexMovement(v mesh.VertexID, m *mesh.Mesh) lin.V3 {
	return t.translation
}
