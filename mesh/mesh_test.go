// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants asserts §3 invariants 1-3 hold across the whole mesh.
func checkInvariants(t *testing.T, m *Mesh) {
	t.Helper()
	m.AllHalfEdges(func(h HalfEdgeID, he HalfEdge) bool {
		twin := m.halfedge(he.Twin)
		require.Falsef(t, he.Twin.Nil(), "halfedge %v has no twin", h)
		require.Equal(t, h, twin.Twin, "twin.twin != self for %v", h)
		require.Equal(t, m.StartVertex(h), twin.EndVertex, "twin.end_vertex != self.start_vertex for %v", h)

		if !he.IsBoundary() {
			n1 := m.halfedge(he.Next)
			n2 := m.halfedge(n1.Next)
			require.Equal(t, h, n2.Next, "next.next.next != self for %v", h)
			require.Equal(t, he.Face, n1.Face)
			require.Equal(t, he.Face, n2.Face)
		}
		return true
	})

	m.AllVertices(func(v VertexID, vert Vertex) bool {
		if vert.Outgoing.Nil() {
			return true
		}
		steps := 0
		cur := vert.Outgoing
		start := cur
		for {
			steps++
			require.LessOrEqualf(t, steps, m.Degree(v)+1, "outgoing rotation for %v did not close within degree", v)
			cur = m.CWRotatedNeighbour(cur)
			if cur == start || cur.Nil() {
				break
			}
		}
		return true
	})
}

func allHalfEdgeSet(m *Mesh) map[HalfEdgeID]struct{} {
	sel := make(map[HalfEdgeID]struct{})
	m.AllHalfEdges(func(h HalfEdgeID, _ HalfEdge) bool {
		sel[h] = struct{}{}
		return true
	})
	return sel
}

func TestE1Triangle(t *testing.T) {
	m := BuildFromIndexedTriangles([][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint32{0, 1, 2})
	stats := m.Stats()
	require.Equal(t, 3, stats.Vertices)
	require.Equal(t, 6, stats.HalfEdges)
	require.Equal(t, 1, stats.Faces)
	checkInvariants(t, m)
}

func TestE2Quad(t *testing.T) {
	m := BuildFromIndexedTriangles([][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, []uint32{0, 1, 2, 0, 2, 3})
	stats := m.Stats()
	require.Equal(t, 4, stats.Vertices)
	require.Equal(t, 2, stats.Faces)
	require.Equal(t, 10, stats.HalfEdges)
	checkInvariants(t, m)
}

func lenSqrOfAll(m *Mesh) []float64 {
	var out []float64
	m.AllHalfEdges(func(h HalfEdgeID, _ HalfEdge) bool {
		out = append(out, m.LengthSquared(h))
		return true
	})
	return out
}

func TestRecomputeNormalsUnitLength(t *testing.T) {
	m := BuildFromIndexedTriangles([][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint32{0, 1, 2})
	m.RecomputeNormals()
	m.AllVertices(func(v VertexID, vert Vertex) bool {
		require.True(t, vert.HasNormal)
		require.InDelta(t, 1.0, vert.Normal.Len(), 1e-9)
		return true
	})
}

func TestSubdivideEdgePreservesInvariants(t *testing.T) {
	m := BuildFromIndexedTriangles([][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, []uint32{0, 1, 2, 0, 2, 3})
	var h HalfEdgeID
	m.AllHalfEdges(func(id HalfEdgeID, he HalfEdge) bool {
		if !he.IsBoundary() {
			h = id
			return false
		}
		return true
	})
	created, err := m.SubdivideEdge(h)
	require.NoError(t, err)
	require.NotEmpty(t, created)
	checkInvariants(t, m)
}

func TestCollapseEdgePreservesInvariants(t *testing.T) {
	m := BuildFromIndexedTriangles([][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, []uint32{0, 1, 2, 0, 2, 3})
	var h HalfEdgeID
	m.AllHalfEdges(func(id HalfEdgeID, he HalfEdge) bool {
		if !he.IsBoundary() {
			h = id
			return false
		}
		return true
	})
	_, _, _, ok, err := m.CollapseEdge(h)
	require.NoError(t, err)
	require.True(t, ok)
	checkInvariants(t, m)
}

func TestExportRoundTrip(t *testing.T) {
	m := BuildFromIndexedTriangles([][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, []uint32{0, 1, 2, 0, 2, 3})
	positions, _, indices := m.Export()
	require.Equal(t, 4, len(positions))
	require.Equal(t, 6, len(indices))

	rebuilt := BuildFromIndexedTriangles(positions, indices)
	require.Equal(t, m.Stats().Vertices, rebuilt.Stats().Vertices)
	require.Equal(t, m.Stats().Faces, rebuilt.Stats().Faces)
}
