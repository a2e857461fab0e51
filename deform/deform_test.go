// Copyright © 2026 Freestyle Sculpt contributors.

package deform

import (
	"testing"

	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/primitive"
	"github.com/madmaxio/freestyle-sculpt/ray"
	"github.com/madmaxio/freestyle-sculpt/selector"
	"github.com/stretchr/testify/require"
)

func volumeQuery(r, f float64) SelectorFunc {
	return func(m *mesh.Mesh, center lin.V3, _ mesh.FaceID) *selector.WeightedSelection {
		return selector.VolumeSphereWithFalloff(m, center, r, f, selector.Smooth)
	}
}

func TestSculptParamsRatios(t *testing.T) {
	p := NewSculptParams(2.0)
	require.InDelta(t, 4.0, p.LmaxSqr, 1e-9)
	require.InDelta(t, 0.96, p.LminSqr, 1e-9)
	require.InDelta(t, 0.44, p.MaxStepSqr, 1e-9)
}

func TestLoadSculptParamsFromYAML(t *testing.T) {
	p, err := LoadSculptParams([]byte("max_edge_length: 2.0\n"))
	require.NoError(t, err)
	require.InDelta(t, 4.0, p.LmaxSqr, 1e-9)
}

// E6: Translate brush pushes a patch of an icosphere outward along +X
// (the outermost vertex moves past x=1) and every half-edge stays twinned.
func TestTranslateApplyMovesSelectionAndStaysManifold(t *testing.T) {
	m := primitive.IcoSphere(1, 2)
	params := NewSculptParams(0.3)
	ws := mesh.NewWorkspace()

	field := NewTranslate(volumeQuery(0.3, 0.2))
	hit, ok := ray.CastRayAndGetFace(m, ray.Ray{Origin: lin.V3{X: 3, Y: 0, Z: 0}, Direction: lin.V3{X: -1, Y: 0, Z: 0}})
	require.True(t, ok)
	field.OnPointerDown(m, hit)
	require.NotEmpty(t, field.Selection().Weights)

	moved := field.OnPointerMove(m, lin.V3{X: 0.1, Y: 0, Z: 0}, nil)
	require.True(t, moved)

	maxXBefore := maxVertexX(m)
	Apply(m, ws, field, 1.0, params)
	require.Greater(t, m.Stats().Vertices, 0)
	require.Greater(t, maxVertexX(m), maxXBefore)

	m.AllHalfEdges(func(h mesh.HalfEdgeID, he mesh.HalfEdge) bool {
		require.False(t, he.Twin.Nil())
		return true
	})
}

// TestTranslateDoesNotAccumulateAcrossMoveEvents drives two consecutive
// OnPointerMove+Apply pairs and checks the field's stored translation
// after the second move is that move's delta only, not delta1+delta2.
func TestTranslateDoesNotAccumulateAcrossMoveEvents(t *testing.T) {
	m := primitive.IcoSphere(1, 2)
	params := NewSculptParams(0.3)
	ws := mesh.NewWorkspace()

	field := NewTranslate(volumeQuery(0.3, 0.2))
	hit, ok := ray.CastRayAndGetFace(m, ray.Ray{Origin: lin.V3{X: 3, Y: 0, Z: 0}, Direction: lin.V3{X: -1, Y: 0, Z: 0}})
	require.True(t, ok)
	field.OnPointerDown(m, hit)

	moved := field.OnPointerMove(m, lin.V3{X: 0.05, Y: 0, Z: 0}, nil)
	require.True(t, moved)
	require.InDelta(t, 0.05, field.translation.X, 1e-9)
	Apply(m, ws, field, 1.0, params)

	moved = field.OnPointerMove(m, lin.V3{X: 0.05, Y: 0, Z: 0}, nil)
	require.True(t, moved)
	require.InDelta(t, 0.05, field.translation.X, 1e-9)
	Apply(m, ws, field, 1.0, params)

	m.AllHalfEdges(func(h mesh.HalfEdgeID, he mesh.HalfEdge) bool {
		require.False(t, he.Twin.Nil())
		return true
	})
}

// TestSmoothApplyReducesSelectionVariance checks the Smooth field pulls
// the brush-centre vertex (the sphere's outermost point along +X) toward
// its neighbourhood mean, i.e. inward, and every half-edge stays twinned.
func TestSmoothApplyReducesSelectionVariance(t *testing.T) {
	m := primitive.IcoSphere(1, 3)
	params := NewSculptParams(0.2)
	ws := mesh.NewWorkspace()

	field := NewSmooth(volumeQuery(0.3, 0.2))
	hit, ok := ray.CastRayAndGetFace(m, ray.Ray{Origin: lin.V3{X: 3, Y: 0, Z: 0}, Direction: lin.V3{X: -1, Y: 0, Z: 0}})
	require.True(t, ok)
	field.OnPointerDown(m, hit)
	require.NotEmpty(t, field.Selection().Weights)

	moved := field.OnPointerMove(m, lin.V3{}, &hit)
	require.True(t, moved)

	maxXBefore := maxVertexX(m)
	Apply(m, ws, field, 1.0, params)
	require.Less(t, maxVertexX(m), maxXBefore)

	m.AllHalfEdges(func(h mesh.HalfEdgeID, he mesh.HalfEdge) bool {
		require.False(t, he.Twin.Nil())
		return true
	})
}

// maxVertexX returns the largest X coordinate among m's live vertices.
func maxVertexX(m *mesh.Mesh) float64 {
	mx := -1e300
	m.AllVertices(func(_ mesh.VertexID, v mesh.Vertex) bool {
		if v.Position.X > mx {
			mx = v.Position.X
		}
		return true
	})
	return mx
}
