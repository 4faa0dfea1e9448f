/*
Copyright © 2026 the occam2d authors.
This file is part of occam2d.

occam2d is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

occam2d is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with occam2d.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package occam2d builds the finite-difference mesh and the regularization
// block structure needed to set up an Occam2D resistivity inversion from
// the station offsets along a survey profile.
package occam2d

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Version gives the version number.
const Version = "1.0.0"

var (
	// ErrTooFewStations is returned when a profile has fewer than two stations.
	ErrTooFewStations = errors.New("occam2d: at least two stations are required")

	// ErrNotIncreasing is returned when station offsets are not finite and
	// strictly increasing.
	ErrNotIncreasing = errors.New("occam2d: station offsets must be strictly increasing")

	// ErrInvalidConfig is returned when a MeshConfig field is out of range.
	ErrInvalidConfig = errors.New("occam2d: invalid mesh configuration")
)

// MergeMode specifies the state that each depth layer starts from when
// merging mesh columns into regularization blocks.
type MergeMode int

const (
	// Cumulative merging starts each layer from the blocks of the layer
	// above it, so blocks only ever grow with depth.
	Cumulative MergeMode = iota

	// Independent merging starts every layer from the un-merged columns
	// of the horizontal mesh.
	Independent
)

func (m MergeMode) String() string {
	switch m {
	case Cumulative:
		return "cumulative"
	case Independent:
		return "independent"
	default:
		return fmt.Sprintf("MergeMode(%d)", int(m))
	}
}

// ParseMergeMode returns the MergeMode named by s.
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cumulative":
		return Cumulative, nil
	case "independent":
		return Independent, nil
	default:
		return Cumulative, fmt.Errorf("%w: merge mode must be 'cumulative' or 'independent', not %q",
			ErrInvalidConfig, s)
	}
}

// MeshConfig is a holder for the configuration information for creating
// an Occam2D mesh and its regularization grid. It is created once and not
// changed while the mesh is being built.
type MeshConfig struct {
	MaxBlockWidth       float64 // largest allowed spacing between adjacent stations [m]
	SideBlockElements   int     // number of padding elements at each end of the profile
	BottomLayerElements int     // number of padding elements below the deepest layer
	LayersPerDecade     float64 // number of layers per decade of depth
	FirstLayerThickness float64 // m

	// BlockMergeThreshold is the fraction of the combined width of two
	// adjacent blocks that the layer thickness must exceed for the blocks
	// to be merged.
	BlockMergeThreshold float64

	NumLayers int       // number of regularization layers, including the bottom padding
	MergeMode MergeMode // how merging proceeds from one layer to the next
}

// DefaultMeshConfig returns the configuration used when no other values
// are given.
func DefaultMeshConfig() MeshConfig {
	return MeshConfig{
		MaxBlockWidth:       500,
		SideBlockElements:   7,
		BottomLayerElements: 4,
		LayersPerDecade:     5,
		FirstLayerThickness: 250,
		BlockMergeThreshold: 0.75,
		NumLayers:           30,
		MergeMode:           Cumulative,
	}
}

// Validate checks that all configuration values are in range.
func (c *MeshConfig) Validate() error {
	positive := []float64{c.MaxBlockWidth, c.LayersPerDecade, c.FirstLayerThickness}
	names := []string{"MaxBlockWidth", "LayersPerDecade", "FirstLayerThickness"}
	for i, v := range positive {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%g but should be >0", ErrInvalidConfig, names[i], v)
		}
	}
	if c.BlockMergeThreshold < 0 || math.IsNaN(c.BlockMergeThreshold) {
		return fmt.Errorf("%w: BlockMergeThreshold=%g but should be >=0", ErrInvalidConfig, c.BlockMergeThreshold)
	}
	if c.SideBlockElements < 1 {
		return fmt.Errorf("%w: SideBlockElements=%d but should be >=1", ErrInvalidConfig, c.SideBlockElements)
	}
	if c.BottomLayerElements < 1 {
		return fmt.Errorf("%w: BottomLayerElements=%d but should be >=1", ErrInvalidConfig, c.BottomLayerElements)
	}
	if c.NumLayers < 3 {
		return fmt.Errorf("%w: NumLayers=%d but should be >=3", ErrInvalidConfig, c.NumLayers)
	}
	if c.MergeMode != Cumulative && c.MergeMode != Independent {
		return fmt.Errorf("%w: unknown merge mode %v", ErrInvalidConfig, c.MergeMode)
	}
	return nil
}
