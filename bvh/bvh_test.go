// Copyright © 2026 Freestyle Sculpt contributors.

package bvh

import (
	"testing"

	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/stretchr/testify/require"
)

func unitTriangleAt(tris map[int][3]lin.V3) TriangleAt {
	return func(key int) (lin.V3, lin.V3, lin.V3, bool) {
		t, ok := tris[key]
		if !ok {
			return lin.V3{}, lin.V3{}, lin.V3{}, false
		}
		return t[0], t[1], t[2], true
	}
}

func gridLeaves(n int) ([]Leaf, map[int][3]lin.V3) {
	leaves := make([]Leaf, 0, n)
	tris := make(map[int][3]lin.V3, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 2
		a := lin.V3{X: x, Y: 0, Z: 0}
		b := lin.V3{X: x + 1, Y: 0, Z: 0}
		c := lin.V3{X: x, Y: 1, Z: 0}
		tris[i] = [3]lin.V3{a, b, c}
		leaves = append(leaves, Leaf{Key: i, Box: FromPoints(a, b, c)})
	}
	return leaves, tris
}

func TestClearAndRebuildCount(t *testing.T) {
	leaves, _ := gridLeaves(37)
	tr := New()
	tr.ClearAndRebuild(leaves, 0.01)
	require.Equal(t, 37, tr.Count())
	require.Greater(t, tr.Depth(), 0)
}

func TestIntersectAABBFindsOverlapping(t *testing.T) {
	leaves, _ := gridLeaves(20)
	tr := New()
	tr.ClearAndRebuild(leaves, 0.0)

	hits := tr.IntersectAABB(AABB{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1.5, Y: 2, Z: 1}})
	require.Contains(t, hits, 0)
	require.NotContains(t, hits, 19)
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	tr := New()
	box := FromPoints(lin.V3{}, lin.V3{X: 1}, lin.V3{Y: 1})
	tr.Insert(1, box)
	require.Equal(t, 1, tr.Count())
	tr.Remove(1)
	require.Equal(t, 0, tr.Count())
}

func TestPreUpdateOrInsertThenRefitInserts(t *testing.T) {
	tr := New()
	tr.PreUpdateOrInsert(5)
	box := FromPoints(lin.V3{X: 2}, lin.V3{X: 3}, lin.V3{X: 2, Y: 1})
	tr.Refit(0.05, func(key int) (AABB, bool) {
		if key == 5 {
			return box, true
		}
		return AABB{}, false
	})
	require.Equal(t, 1, tr.Count())
}

func TestRefitUpdatesExistingLeafBox(t *testing.T) {
	tr := New()
	tr.Insert(1, FromPoints(lin.V3{}, lin.V3{X: 1}, lin.V3{Y: 1}))
	tr.PreUpdateOrInsert(1)
	moved := FromPoints(lin.V3{X: 100}, lin.V3{X: 101}, lin.V3{X: 100, Y: 1})
	tr.Refit(0.0, func(key int) (AABB, bool) { return moved, true })

	// moved is flat in Z and Overlaps is strict, so query a slightly
	// thicker box around it.
	hits := tr.IntersectAABB(moved.Expand(0.01))
	require.Contains(t, hits, 1)
}

func TestRebalanceDoesNotExpandMarginAgain(t *testing.T) {
	leaves, _ := gridLeaves(10)
	tr := New()
	tr.ClearAndRebuild(leaves, 0.1)

	var boxBefore AABB
	tr.Leaves(func(key int, box AABB) bool {
		if key == 0 {
			boxBefore = box
		}
		return true
	})

	tr.Rebalance()

	var boxAfter AABB
	tr.Leaves(func(key int, box AABB) bool {
		if key == 0 {
			boxAfter = box
		}
		return true
	})

	require.InDelta(t, boxBefore.Min.X, boxAfter.Min.X, 1e-9)
	require.InDelta(t, boxBefore.Max.X, boxAfter.Max.X, 1e-9)
}

func TestRaycastNearestHitsClosestTriangle(t *testing.T) {
	tris := map[int][3]lin.V3{
		0: {{X: -1, Y: -1, Z: 5}, {X: 1, Y: -1, Z: 5}, {X: 0, Y: 1, Z: 5}},
		1: {{X: -1, Y: -1, Z: 10}, {X: 1, Y: -1, Z: 10}, {X: 0, Y: 1, Z: 10}},
	}
	leaves := []Leaf{
		{Key: 0, Box: FromPoints(tris[0][0], tris[0][1], tris[0][2])},
		{Key: 1, Box: FromPoints(tris[1][0], tris[1][1], tris[1][2])},
	}
	tr := New()
	tr.ClearAndRebuild(leaves, 0.01)

	hit, found := tr.RaycastNearest(lin.V3{X: 0, Y: -0.1, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1}, unitTriangleAt(tris))
	require.True(t, found)
	require.Equal(t, 0, hit.Key)
	require.InDelta(t, 5.0, hit.T, 1e-6)
}

func TestRaycastNearestMisses(t *testing.T) {
	tris := map[int][3]lin.V3{
		0: {{X: -1, Y: -1, Z: 5}, {X: 1, Y: -1, Z: 5}, {X: 0, Y: 1, Z: 5}},
	}
	leaves := []Leaf{{Key: 0, Box: FromPoints(tris[0][0], tris[0][1], tris[0][2])}}
	tr := New()
	tr.ClearAndRebuild(leaves, 0.01)

	_, found := tr.RaycastNearest(lin.V3{X: 10, Y: 10, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1}, unitTriangleAt(tris))
	require.False(t, found)
}

func TestProjectPointReturnsNearestTriangle(t *testing.T) {
	tris := map[int][3]lin.V3{
		0: {{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		1: {{X: 10, Y: 0, Z: 0}, {X: 11, Y: 0, Z: 0}, {X: 10, Y: 1, Z: 0}},
	}
	leaves := []Leaf{
		{Key: 0, Box: FromPoints(tris[0][0], tris[0][1], tris[0][2])},
		{Key: 1, Box: FromPoints(tris[1][0], tris[1][1], tris[1][2])},
	}
	tr := New()
	tr.ClearAndRebuild(leaves, 0.01)

	proj, found := tr.ProjectPoint(lin.V3{X: 0.2, Y: 0.2, Z: 1}, unitTriangleAt(tris))
	require.True(t, found)
	require.Equal(t, 0, proj.Key)
	require.InDelta(t, 1.0, proj.DistSqr, 1e-9)
}

func TestClosestPointOnTriangleVertexRegion(t *testing.T) {
	a, b, c := lin.V3{X: 0}, lin.V3{X: 1}, lin.V3{Y: 1}
	p := lin.V3{X: -5, Y: -5}
	got := closestPointOnTriangle(p, a, b, c)
	require.InDelta(t, 0, got.X, 1e-9)
	require.InDelta(t, 0, got.Y, 1e-9)
}

func TestClosestPointOnTriangleFaceRegion(t *testing.T) {
	a, b, c := lin.V3{X: 0}, lin.V3{X: 1}, lin.V3{Y: 1}
	p := lin.V3{X: 0.25, Y: 0.25, Z: 3}
	got := closestPointOnTriangle(p, a, b, c)
	require.InDelta(t, 0.25, got.X, 1e-9)
	require.InDelta(t, 0.25, got.Y, 1e-9)
	require.InDelta(t, 0, got.Z, 1e-9)
}
