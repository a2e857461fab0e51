// Copyright © 2026 Freestyle Sculpt contributors.

package deform

import (
	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/ray"
)

// smoothFactor is the damped-Laplacian gain k (§4.G): small enough that
// one substep never overshoots the mean-neighbour position.
const smoothFactor = 0.1

// Smooth relaxes each selected vertex toward the mean of its 1-ring
// neighbours, damped by smoothFactor.
type Smooth struct {
	base
}

// NewSmooth builds a Smooth field that re-queries its selection with
// query.
func NewSmooth(query SelectorFunc) *Smooth {
	return &Smooth{base: base{query: query}}
}

func (s *Smooth) OnPointerDown(m *mesh.Mesh, fi ray.FaceIntersection) {
	s.setAnchor(fi.Point, fi.Face, m)
}

func (s *Smooth) OnPointerMove(m *mesh.Mesh, translation lin.V3, fi *ray.FaceIntersection) bool {
	if fi == nil {
		return false
	}
	s.setAnchor(fi.Point, fi.Face, m)
	return true
}

// VertexMovement returns (mean(neighbour positions) - position[v]) * k.
func (s *Smooth) VertexMovement(v mesh.VertexID, m *mesh.Mesh) lin.V3 {
	vert, ok := m.Vertex(v)
	if !ok {
		return lin.V3{}
	}
	sum := lin.NewV3()
	n := 0
	m.Neighbours(v, func(nb mesh.VertexID) bool {
		nvert, ok := m.Vertex(nb)
		if !ok {
			return true
		}
		sum.Add(sum, &nvert.Position)
		n++
		return true
	})
	if n == 0 {
		return lin.V3{}
	}
	mean := sum.Scale(sum, 1.0/float64(n))
	delta := lin.Minus(mean, &vert.Position)
	delta.Scale(delta, smoothFactor)
	return *delta
}
