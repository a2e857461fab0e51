// Copyright © 2026 Freestyle Sculpt contributors.

package deform

import (
	"math"

	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/selection"
	"github.com/madmaxio/freestyle-sculpt/selector"
)

// Apply runs field's substep loop against m at the given strength,
// following §4.G exactly:
//  1. compute M² = max_movement_squared(strength).
//  2. steps = ceil(sqrt(M²/MaxStepSqr)), factor = 1/steps.
//  3. collapse_until_above(LminSqr); subdivide_until_below(LmaxSqr).
//  4. repeat steps times: resolve to vertices, displace by
//     vertex_movement·weight·strength·factor, remesh again.
//  5. refit the BVH.
//
// ws is the caller-owned remesh workspace, reused across calls so the
// remesh candidate scratch is not rebuilt each substep (§5); the
// displacement buffer and resolved selections are allocated per call.
func Apply(m *mesh.Mesh, ws *mesh.Workspace, field Field, strength float64, params SculptParams) {
	sel := field.Selection()
	if sel == nil || len(sel.Weights) == 0 || strength == 0 {
		return
	}

	m2 := maxMovementSquared(m, field, strength)
	steps := 0
	if params.MaxStepSqr > 0 {
		steps = int(math.Ceil(math.Sqrt(m2 / params.MaxStepSqr)))
	}

	selHE, selV, selF := toMeshSelection(m, sel)
	m.CollapseUntilAbove(ws, params.LminSqr, selHE, selV, selF)
	m.SubdivideUntilBelow(ws, params.LmaxSqr, selHE)
	field.Requery(m)

	if steps > 0 {
		factor := 1.0 / float64(steps)
		type displacement struct {
			v mesh.VertexID
			d lin.V3
		}
		buffer := make([]displacement, 0, len(sel.Weights))

		for i := 0; i < steps; i++ {
			sel = field.Selection()
			if sel == nil {
				break
			}
			buffer = buffer[:0]
			for v := range sel.Weights {
				w := field.Weight(v)
				mv := field.VertexMovement(v, m)
				d := lin.NewV3().Scale(&mv, w*strength*factor)
				buffer = append(buffer, displacement{v, *d})
			}
			for _, b := range buffer {
				if vert, ok := m.Vertex(b.v); ok {
					newPos := lin.NewV3().Add(&vert.Position, &b.d)
					m.MoveVertex(b.v, *newPos)
				}
			}

			selHE, selV, selF = toMeshSelection(m, field.Selection())
			m.CollapseUntilAbove(ws, params.LminSqr, selHE, selV, selF)
			m.SubdivideUntilBelow(ws, params.LmaxSqr, selHE)
			field.Requery(m)
		}
	}

	m.Refit()
}

// maxMovementSquared returns the max over affected vertices of
// ||vertex_movement·weight·strength||² (§4.G step 1).
func maxMovementSquared(m *mesh.Mesh, field Field, strength float64) float64 {
	sel := field.Selection()
	if sel == nil {
		return 0
	}
	max2 := 0.0
	for v := range sel.Weights {
		w := field.Weight(v)
		mv := field.VertexMovement(v, m)
		scale := w * strength
		len2 := mv.LenSqr() * scale * scale
		if len2 > max2 {
			max2 = len2
		}
	}
	return max2
}

// toMeshSelection converts a WeightedSelection's faces and weighted
// vertices into the three raw id maps the remesh passes mutate in
// place (new ids inserted, destroyed ids pruned).
func toMeshSelection(m *mesh.Mesh, sel *selector.WeightedSelection) (selHE map[mesh.HalfEdgeID]struct{}, selV map[mesh.VertexID]struct{}, selF map[mesh.FaceID]struct{}) {
	s := selection.New()
	for f := range sel.Faces.Faces {
		s.InsertFace(f)
	}
	for v := range sel.Weights {
		s.InsertVertex(v)
	}
	selHE = selection.ResolveToHalfEdges(m, s)
	selV = selection.ResolveToVertices(m, s)
	selF = s.Faces
	return
}
