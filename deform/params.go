// Copyright © 2026 Freestyle Sculpt contributors.

package deform

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SculptParams holds the three squared-length thresholds the remesh
// passes and substep loop are tuned against, derived from a single
// user-facing max edge length (§4.G). The ratios are fixed: changing
// them destabilizes the remesher against oscillation.
type SculptParams struct {
	LmaxSqr    float64 `yaml:"lmax_sqr"`
	LminSqr    float64 `yaml:"lmin_sqr"`
	MaxStepSqr float64 `yaml:"max_step_sqr"`
}

// NewSculptParams derives Lmax²=L², Lmin²=0.24·L², MaxStep²=0.11·L² from
// the user-facing target edge length L.
func NewSculptParams(maxEdgeLength float64) SculptParams {
	l2 := maxEdgeLength * maxEdgeLength
	return SculptParams{
		LmaxSqr:    l2,
		LminSqr:    0.24 * l2,
		MaxStepSqr: 0.11 * l2,
	}
}

// sculptParamsConfig is the on-disk shape: authors write max_edge_length,
// not the derived squared ratios.
type sculptParamsConfig struct {
	MaxEdgeLength float64 `yaml:"max_edge_length"`
}

// LoadSculptParams reads a max_edge_length from yaml and derives
// SculptParams from it, grounded on gazed-vu/load/shd.go's Shd loader
// (yaml.Unmarshal into a private config struct, wrapped error).
func LoadSculptParams(data []byte) (SculptParams, error) {
	var cfg sculptParamsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SculptParams{}, fmt.Errorf("LoadSculptParams: yaml %w", err)
	}
	return NewSculptParams(cfg.MaxEdgeLength), nil
}
