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

package occam2d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// VerticalMesh holds the vertical discretization below the profile.
type VerticalMesh struct {
	// Thicknesses are the thicknesses of the layers above the bottom
	// padding, top to bottom. There are NumLayers-1 of them.
	Thicknesses []float64

	// Bottom holds the thickness of each bottom padding element.
	Bottom []float64

	// Spacings are the distances between adjacent mesh nodes, top to bottom.
	Spacings []float64

	// Elements holds, for each regularization layer, the number of
	// consecutive Spacings that make up the layer.
	Elements []int
}

// NumNodes returns the number of mesh nodes in the vertical direction.
func (v *VerticalMesh) NumNodes() int { return len(v.Spacings) + 1 }

// NumLayers returns the number of regularization layers.
func (v *VerticalMesh) NumLayers() int { return len(v.Elements) }

// Depth returns the total depth of the mesh.
func (v *VerticalMesh) Depth() float64 { return floats.Sum(v.Spacings) }

// LayerThickness returns the thickness of regularization layer k.
func (v *VerticalMesh) LayerThickness(k int) float64 {
	var row int
	for i := 0; i < k; i++ {
		row += v.Elements[i]
	}
	return floats.Sum(v.Spacings[row : row+v.Elements[k]])
}

// NewVerticalMesh creates a vertical mesh with numLayers regularization
// layers, the last of which holds bottomElements padding elements.
// Layer thicknesses grow so that there are layersPerDecade layers per
// factor of ten in depth, but no layer is thinner than firstLayerThickness.
func NewVerticalMesh(numLayers int, layersPerDecade, firstLayerThickness float64, bottomElements int) (*VerticalMesh, error) {
	switch {
	case numLayers < 3:
		return nil, fmt.Errorf("%w: NumLayers=%d but should be >=3", ErrInvalidConfig, numLayers)
	case !(layersPerDecade > 0):
		return nil, fmt.Errorf("%w: LayersPerDecade=%g but should be >0", ErrInvalidConfig, layersPerDecade)
	case !(firstLayerThickness > 0):
		return nil, fmt.Errorf("%w: FirstLayerThickness=%g but should be >0", ErrInvalidConfig, firstLayerThickness)
	case bottomElements < 1:
		return nil, fmt.Errorf("%w: BottomLayerElements=%d but should be >=1", ErrInvalidConfig, bottomElements)
	}

	growth := math.Pow(10, 1/layersPerDecade)
	v := &VerticalMesh{
		Thicknesses: make([]float64, numLayers-1),
		Bottom:      make([]float64, bottomElements),
	}
	v.Thicknesses[0] = firstLayerThickness
	depth := firstLayerThickness
	for i := 1; i < len(v.Thicknesses); i++ {
		t := math.Max(depth*growth-depth, firstLayerThickness)
		v.Thicknesses[i] = t
		depth += t
	}

	b := 3 * v.Thicknesses[len(v.Thicknesses)-1]
	for i := range v.Bottom {
		v.Bottom[i] = b
		b *= 3
	}

	// The top two layers are split in half so the uppermost nodes
	// straddle the surface interface.
	for _, t := range v.Thicknesses[:2] {
		v.Spacings = append(v.Spacings, t/2, t/2)
		v.Elements = append(v.Elements, 2)
	}
	for _, t := range v.Thicknesses[2:] {
		v.Spacings = append(v.Spacings, t)
		v.Elements = append(v.Elements, 1)
	}
	v.Spacings = append(v.Spacings, v.Bottom...)
	v.Elements = append(v.Elements, bottomElements)
	return v, nil
}
