// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

import (
	"github.com/madmaxio/freestyle-sculpt/id"
	"github.com/madmaxio/freestyle-sculpt/math/lin"
)

// RecomputeNormals recomputes every live vertex's normal as the
// normalized sum of its incident faces' unnormalized normals (§4.B):
// larger faces contribute proportionally more to the average, which is
// the standard area-weighted approximation obtained by skipping the
// per-face normalize step. Not kept live during editing (§9 open
// question); callers invoke this explicitly, typically once at egress.
func (m *Mesh) RecomputeNormals() {
	m.vertices.All(func(i id.Id, v Vertex) bool {
		vert := m.vertices.GetMut(i)
		vert.Normal = lin.V3{}
		vert.HasNormal = false
		return true
	})

	m.faces.All(func(i id.Id, f Face) bool {
		fid := FaceID(i)
		vs := m.FaceVertices(fid)
		a, b, c := m.vertex(vs[0]).Position, m.vertex(vs[1]).Position, m.vertex(vs[2]).Position
		e1 := lin.Minus(&b, &a)
		e2 := lin.Minus(&c, &a)
		n := lin.NewV3().Cross(e1, e2)
		for _, v := range vs {
			vert := m.vertices.GetMut(id.Id(v))
			vert.Normal.Add(&vert.Normal, n)
		}
		return true
	})

	m.vertices.All(func(i id.Id, v Vertex) bool {
		vert := m.vertices.GetMut(i)
		if vert.Normal.LenSqr() > lin.Epsilon {
			vert.Normal.Unit()
			vert.HasNormal = true
		}
		return true
	})
}
