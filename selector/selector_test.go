// Copyright © 2026 Freestyle Sculpt contributors.

package selector

import (
	"testing"

	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/primitive"
	"github.com/stretchr/testify/require"
)

func TestLinearFalloffIdentity(t *testing.T) {
	require.Equal(t, 0.0, Linear(0))
	require.Equal(t, 1.0, Linear(1))
	require.Equal(t, 0.5, Linear(0.5))
}

func TestSmoothFalloffEndpoints(t *testing.T) {
	require.InDelta(t, 0.0, Smooth(0), 1e-9)
	require.InDelta(t, 1.0, Smooth(1), 1e-9)
	require.InDelta(t, 0.5, Smooth(0.5), 1e-9)
}

func TestWeightLawInsideCoreIsOne(t *testing.T) {
	require.Equal(t, 1.0, weight(0, 1, 0.5, Linear))
	require.Equal(t, 1.0, weight(1, 1, 0.5, Linear))
}

func TestWeightLawBeyondReachIsZero(t *testing.T) {
	require.Equal(t, 0.0, weight(1.51, 1, 0.5, Linear))
}

func TestWeightLawFalloffBand(t *testing.T) {
	// d = r + f/2 -> falloff_fn((r+f-d)/f) = falloff_fn(0.5).
	got := weight(1.25, 1, 0.5, Linear)
	require.InDelta(t, 0.5, got, 1e-9)
}

func firstVertex(m *mesh.Mesh) mesh.VertexID {
	var v mesh.VertexID
	m.AllVertices(func(id mesh.VertexID, _ mesh.Vertex) bool {
		v = id
		return false
	})
	return v
}

func TestVolumeSphereWithFalloffSelectsNearbyFaces(t *testing.T) {
	m := primitive.IcoSphere(1, 2)
	center := lin.V3{X: 1, Y: 0, Z: 0}
	sel := VolumeSphereWithFalloff(m, center, 0.3, 0.3, Smooth)
	require.False(t, sel.Faces.Empty())
	for v, w := range sel.Weights {
		require.GreaterOrEqual(t, w, 0.0)
		require.LessOrEqual(t, w, 1.0)
		_ = v
	}
}

func TestVolumeSphereWithFalloffEmptyFarFromMesh(t *testing.T) {
	m := primitive.IcoSphere(1, 1)
	center := lin.V3{X: 100, Y: 100, Z: 100}
	sel := VolumeSphereWithFalloff(m, center, 0.1, 0.1, Linear)
	require.True(t, sel.Faces.Empty())
	require.Empty(t, sel.Weights)
}

func TestSurfaceSphereWithFalloffWalksRing(t *testing.T) {
	m := primitive.IcoSphere(1, 2)
	start := firstVertex(m)
	v, _ := m.Vertex(start)
	sel := SurfaceSphereWithFalloff(m, start, v.Position, 0.3, 0.3, Linear, 0)
	require.Contains(t, sel.Weights, start)
	require.Equal(t, 1.0, sel.Weights[start])
	require.False(t, sel.Faces.Empty())
}

func TestSurfaceSphereWithFalloffRespectsMaxVertices(t *testing.T) {
	m := primitive.IcoSphere(1, 3)
	start := firstVertex(m)
	v, _ := m.Vertex(start)
	sel := SurfaceSphereWithFalloff(m, start, v.Position, 10, 10, Linear, 5)
	require.LessOrEqual(t, len(sel.Weights), 5)
}

func TestSurfaceSphereWithFalloffStaleStartReturnsEmpty(t *testing.T) {
	m := primitive.IcoSphere(1, 1)
	sel := SurfaceSphereWithFalloff(m, mesh.VertexID(999999), lin.V3{}, 1, 1, Linear, 0)
	require.True(t, sel.Faces.Empty())
}
