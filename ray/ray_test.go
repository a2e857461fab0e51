// Copyright © 2026 Freestyle Sculpt contributors.

package ray

import (
	"testing"

	"github.com/madmaxio/freestyle-sculpt/math/lin"
	"github.com/madmaxio/freestyle-sculpt/primitive"
	"github.com/stretchr/testify/require"
)

func TestPointAt(t *testing.T) {
	r := Ray{Origin: lin.V3{X: 1, Y: 0, Z: 0}, Direction: lin.V3{X: 0, Y: 1, Z: 0}}
	p := r.PointAt(2)
	require.Equal(t, lin.V3{X: 1, Y: 2, Z: 0}, p)
}

func TestCastRayAndGetFaceHitsIcoSphere(t *testing.T) {
	m := primitive.IcoSphere(1, 2)
	r := Ray{Origin: lin.V3{X: 3, Y: 0, Z: 0}, Direction: lin.V3{X: -1, Y: 0, Z: 0}}
	hit, ok := CastRayAndGetFace(m, r)
	require.True(t, ok)
	require.InDelta(t, 1.0, hit.Point.Len(), 1e-6)
}

func TestCastRayAndGetFaceMisses(t *testing.T) {
	m := primitive.IcoSphere(1, 2)
	r := Ray{Origin: lin.V3{X: 3, Y: 5, Z: 5}, Direction: lin.V3{X: -1, Y: 0, Z: 0}}
	_, ok := CastRayAndGetFace(m, r)
	require.False(t, ok)
}

func TestProjectFindsNearestSurfacePoint(t *testing.T) {
	m := primitive.IcoSphere(1, 2)
	p := lin.V3{X: 2, Y: 0, Z: 0}
	hit, ok := Project(m, p)
	require.True(t, ok)
	require.InDelta(t, 1.0, hit.Point.Len(), 1e-6)
}
