// Copyright © 2026 Freestyle Sculpt contributors.

// Package primitive builds seed meshes: single triangles, quads, and
// subdivided icospheres (§6). IcoSphere's recursive midpoint split with
// unordered-pair dedup is grounded on sksmith-conway/conway/seeds.go's
// icosahedron seed generator, adapted from that package's map-keyed
// polyhedron to build_from_indexed_triangles ingress instead.
package primitive

import (
	"math"

	"github.com/madmaxio/freestyle-sculpt/mesh"
)

// Triangle builds a single-face mesh from three corners (§6).
func Triangle(a, b, c [3]float64) *mesh.Mesh {
	return mesh.BuildFromIndexedTriangles([][3]float64{a, b, c}, []uint32{0, 1, 2})
}

// Quad builds a two-face mesh (a,b,c)(a,c,d) from four corners (§6).
func Quad(a, b, c, d [3]float64) *mesh.Mesh {
	return mesh.BuildFromIndexedTriangles([][3]float64{a, b, c, d}, []uint32{0, 1, 2, 0, 2, 3})
}

// icosahedron returns the canonical 12-vertex, 20-face unit icosahedron.
func icosahedron() ([][3]float64, []uint32) {
	t := (1 + math.Sqrt(5)) / 2
	raw := [][3]float64{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	verts := make([][3]float64, len(raw))
	for i, p := range raw {
		verts[i] = normalize(p)
	}
	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return verts, indices
}

func normalize(p [3]float64) [3]float64 {
	length := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	if length == 0 {
		return p
	}
	return [3]float64{p[0] / length, p[1] / length, p[2] / length}
}

func midpoint(a, b [3]float64) [3]float64 {
	return normalize([3]float64{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2, (a[2] + b[2]) / 2})
}

type edgeKey struct{ a, b uint32 }

func makeEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// subdivideOnce performs one Loop-style midpoint split: every triangle
// becomes four, new vertices sit at edge midpoints deduplicated by the
// unordered vertex-index pair (§6).
func subdivideOnce(verts [][3]float64, indices []uint32) ([][3]float64, []uint32) {
	midCache := make(map[edgeKey]uint32)
	midOf := func(ia, ib uint32) uint32 {
		key := makeEdgeKey(ia, ib)
		if idx, ok := midCache[key]; ok {
			return idx
		}
		idx := uint32(len(verts))
		verts = append(verts, midpoint(verts[ia], verts[ib]))
		midCache[key] = idx
		return idx
	}

	newIndices := make([]uint32, 0, len(indices)*4)
	triCount := len(indices) / 3
	for t := 0; t < triCount; t++ {
		ia, ib, ic := indices[3*t], indices[3*t+1], indices[3*t+2]
		mab := midOf(ia, ib)
		mbc := midOf(ib, ic)
		mca := midOf(ic, ia)
		newIndices = append(newIndices,
			ia, mab, mca,
			ib, mbc, mab,
			ic, mca, mbc,
			mab, mbc, mca,
		)
	}
	return verts, newIndices
}

// IcoSphere builds a sphere of the given radius, starting from the
// canonical icosahedron and applying subdivisions levels of Loop-style
// midpoint splitting (§6).
func IcoSphere(radius float64, subdivisions int) *mesh.Mesh {
	verts, indices := icosahedron()
	for i := 0; i < subdivisions; i++ {
		verts, indices = subdivideOnce(verts, indices)
	}
	for i, v := range verts {
		verts[i] = [3]float64{v[0] * radius, v[1] * radius, v[2] * radius}
	}
	return mesh.BuildFromIndexedTriangles(verts, indices)
}
