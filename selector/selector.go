// Copyright © 2026 Freestyle Sculpt contributors.

// Package selector turns a brush center (or a BFS start face) into a
// WeightedSelection of faces, each selected vertex carrying a falloff
// weight in [0,1]. Grounded on gazed-vu/physics/caster.go's AABB-query
// broad phase for the volume selector and sksmith-conway/conway's
// adjacency-walk style for the surface selector's BFS.
package selector

import (
	"github.com/madmaxio/freestyle-sculpt/mesh"
	"github.com/madmaxio/freestyle-sculpt/selection"
)

// FalloffFn maps a normalized distance in [0,1] (0 at the brush edge,
// 1 at the brush core) to a weight in [0,1]. Must be a pure function.
type FalloffFn func(x float64) float64

// Linear is the identity falloff.
func Linear(x float64) float64 { return x }

// Smooth is the cubic smoothstep 3x²-2x³.
func Smooth(x float64) float64 { return x * x * (3 - 2*x) }

// WeightedSelection pairs a face selection with a per-vertex weight,
// as produced by a brush query against a live mesh.
type WeightedSelection struct {
	Faces   *selection.Set
	Weights map[mesh.VertexID]float64
}

func newWeightedSelection() *WeightedSelection {
	return &WeightedSelection{
		Faces:   selection.New(),
		Weights: make(map[mesh.VertexID]float64),
	}
}

// weight implements the shared §4.F law: 1 inside the core radius r,
// falloff_fn((r+f-d)/f) inside the falloff band, 0 beyond r+f.
func weight(d, r, f float64, falloffFn FalloffFn) float64 {
	switch {
	case d <= r:
		return 1
	case f <= 0:
		return 0
	case d <= r+f:
		return falloffFn((r + f - d) / f)
	default:
		return 0
	}
}
