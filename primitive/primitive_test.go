// Copyright © 2026 Freestyle Sculpt contributors.

package primitive

import (
	"math"
	"testing"

	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/stretchr/testify/require"
)

func TestTriangleShape(t *testing.T) {
	m := Triangle([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0})
	stats := m.Stats()
	require.Equal(t, 3, stats.Vertices)
	require.Equal(t, 1, stats.Faces)
	require.Equal(t, 6, stats.HalfEdges)
}

func TestQuadShape(t *testing.T) {
	m := Quad([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0}, [3]float64{0, 1, 0})
	stats := m.Stats()
	require.Equal(t, 4, stats.Vertices)
	require.Equal(t, 2, stats.Faces)
	require.Equal(t, 10, stats.HalfEdges)
}

// E3: IcoSphere(radius=1, subdivisions=0).
func TestIcoSphereBaseShape(t *testing.T) {
	m := IcoSphere(1, 0)
	stats := m.Stats()
	require.Equal(t, 12, stats.Vertices)
	require.Equal(t, 20, stats.Faces)

	maxLen := 0.0
	m.AllVertices(func(_ mesh.VertexID, v mesh.Vertex) bool {
		if l := v.Position.Len(); l > maxLen {
			maxLen = l
		}
		return true
	})
	require.InDelta(t, 1.0, maxLen, 1e-6)
}

func allHalfEdges(m *mesh.Mesh) map[mesh.HalfEdgeID]struct{} {
	sel := make(map[mesh.HalfEdgeID]struct{})
	m.AllHalfEdges(func(h mesh.HalfEdgeID, _ mesh.HalfEdge) bool {
		sel[h] = struct{}{}
		return true
	})
	return sel
}

// E4: IcoSphere(1,2); subdivide_until_below(0.04²) on select_all.
func TestIcoSphereSubdivideUntilBelow(t *testing.T) {
	m := IcoSphere(1, 2)
	before := m.Stats().Vertices

	ws := mesh.NewWorkspace()
	sel := allHalfEdges(m)
	const lmax2 = 0.04 * 0.04
	m.SubdivideUntilBelow(ws, lmax2, sel)

	after := m.Stats().Vertices
	require.GreaterOrEqual(t, after, before)

	m.AllHalfEdges(func(h mesh.HalfEdgeID, _ mesh.HalfEdge) bool {
		require.LessOrEqual(t, m.LengthSquared(h), lmax2+1e-9)
		return true
	})
}

// E5: IcoSphere(10,2); subdivide-below 16.0 then collapse-above 9.0.
func TestIcoSphereSubdivideThenCollapseStaysInBand(t *testing.T) {
	m := IcoSphere(10, 2)
	ws := mesh.NewWorkspace()

	selHE := allHalfEdges(m)
	m.SubdivideUntilBelow(ws, 16.0, selHE)

	selV := make(map[mesh.VertexID]struct{})
	selF := make(map[mesh.FaceID]struct{})
	m.AllHalfEdges(func(h mesh.HalfEdgeID, _ mesh.HalfEdge) bool { selHE[h] = struct{}{}; return true })
	m.CollapseUntilAbove(ws, 9.0, selHE, selV, selF)

	m.AllHalfEdges(func(h mesh.HalfEdgeID, he mesh.HalfEdge) bool {
		l2 := m.LengthSquared(h)
		require.GreaterOrEqual(t, l2, 9.0-1e-6)
		require.LessOrEqual(t, l2, 16.0+1e-6)
		twin, _ := m.HalfEdge(he.Twin)
		require.False(t, he.Twin.Nil())
		_ = twin
		return true
	})
}

func TestIcoSphereNoNaNPositions(t *testing.T) {
	m := IcoSphere(1, 1)
	m.AllVertices(func(_ mesh.VertexID, v mesh.Vertex) bool {
		require.False(t, math.IsNaN(v.Position.X))
		require.False(t, math.IsNaN(v.Position.Y))
		require.False(t, math.IsNaN(v.Position.Z))
		return true
	})
}
