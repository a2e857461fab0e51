// Copyright © 2026 Freestyle Sculpt contributors.

package mesh

// Export converts the mesh to flat indexed-triangle buffers (§6):
// normals are recomputed first if any vertex lacks one, one
// position/normal slot is emitted per live vertex id, and 3 indices are
// emitted per live face in vertex-iteration order.
func (m *Mesh) Export() (positions [][3]float64, normals [][3]float64, indices []uint32) {
	allHaveNormals := true
	m.AllVertices(func(_ VertexID, v Vertex) bool {
		if !v.HasNormal {
			allHaveNormals = false
			return false
		}
		return true
	})
	if !allHaveNormals {
		m.RecomputeNormals()
	}

	indexOf := make(map[VertexID]uint32, m.vertices.Len())
	positions = make([][3]float64, 0, m.vertices.Len())
	normals = make([][3]float64, 0, m.vertices.Len())
	m.AllVertices(func(v VertexID, vert Vertex) bool {
		indexOf[v] = uint32(len(positions))
		positions = append(positions, [3]float64{vert.Position.X, vert.Position.Y, vert.Position.Z})
		normals = append(normals, [3]float64{vert.Normal.X, vert.Normal.Y, vert.Normal.Z})
		return true
	})

	indices = make([]uint32, 0, m.faces.Len()*3)
	m.AllFaces(func(f FaceID, _ Face) bool {
		vs := m.FaceVertices(f)
		indices = append(indices, indexOf[vs[0]], indexOf[vs[1]], indexOf[vs[2]])
		return true
	})

	return positions, normals, indices
}
