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

	"gonum.org/v1/gonum/floats"
)

// MaxSidePadding is the largest width [m] of any single side padding element.
const MaxSidePadding = 1e6

// Column is a group of adjacent finite-element columns.
type Column struct {
	Width    float64 // m
	Elements int     // number of finite-element columns
}

// HorizontalMesh holds the horizontal discretization of the profile.
type HorizontalMesh struct {
	// Spacings are the distances between adjacent mesh nodes, left to right.
	Spacings []float64

	// Columns group the spacings: Columns[i].Elements consecutive spacings
	// add up to Columns[i].Width. The first and last columns hold the side
	// padding.
	Columns []Column

	// LeftOffset is the distance from the left edge of the mesh to the
	// first station, covering the side padding and the transition columns.
	LeftOffset float64

	// BindingOffset is the profile coordinate of the left edge of the mesh:
	// the first offset minus LeftOffset. LeftOffset includes the two
	// transition columns as well as the side padding, so every mesh node
	// lands on its true profile coordinate.
	BindingOffset float64
}

// NumNodes returns the number of mesh nodes in the horizontal direction.
func (h *HorizontalMesh) NumNodes() int { return len(h.Spacings) + 1 }

// Elements returns the total number of finite-element columns.
func (h *HorizontalMesh) Elements() int {
	var n int
	for _, c := range h.Columns {
		n += c.Elements
	}
	return n
}

// Width returns the total width of the mesh.
func (h *HorizontalMesh) Width() float64 { return floats.Sum(h.Spacings) }

// sidePadding returns n padding element widths starting at seed, each one
// three times the previous one but no larger than MaxSidePadding.
func sidePadding(seed float64, n int) []float64 {
	o := make([]float64, n)
	w := seed
	for i := range o {
		if i > 0 {
			w *= 3
		}
		if w > MaxSidePadding {
			w = MaxSidePadding
		}
		o[i] = w
	}
	return o
}

// NewHorizontalMesh creates the horizontal mesh for profile p, with
// sideElements padding elements at each end.
//
// Every station sits on a mesh node in the middle of a two-element column
// whose edges are the midpoints to the neighboring stations. Two such
// columns at each end of the profile make the transition to the side
// padding, which grows by a factor of three per element.
func NewHorizontalMesh(p *Profile, sideElements int) (*HorizontalMesh, error) {
	if sideElements < 1 {
		return nil, fmt.Errorf("%w: SideBlockElements=%d but should be >=1", ErrInvalidConfig, sideElements)
	}
	if p == nil || len(p.Offsets) < 2 {
		return nil, ErrTooFewStations
	}
	x := p.Offsets
	half := make([]float64, len(x)-1)
	for i := range half {
		half[i] = (x[i+1] - x[i]) / 2
		if !(half[i] > 0) {
			return nil, fmt.Errorf("%w: offsets %d and %d (%g, %g)", ErrNotIncreasing, i, i+1, x[i], x[i+1])
		}
	}
	first, last := half[0], half[len(half)-1]

	h := new(HorizontalMesh)
	addColumn := func(spacings ...float64) {
		h.Spacings = append(h.Spacings, spacings...)
		h.Columns = append(h.Columns, Column{Width: floats.Sum(spacings), Elements: len(spacings)})
	}

	left := sidePadding(3*first, sideElements)
	for i, j := 0, len(left)-1; i < j; i, j = i+1, j-1 {
		left[i], left[j] = left[j], left[i]
	}
	addColumn(left...)

	addColumn(first, first)
	addColumn(first, first) // first station on the center node

	for i := 1; i < len(x)-1; i++ {
		addColumn(half[i-1], half[i])
	}

	addColumn(last, last) // last station on the center node
	addColumn(last, last)

	addColumn(sidePadding(3*last, sideElements)...)

	h.LeftOffset = floats.Sum(left) + 3*first
	h.BindingOffset = x[0] - h.LeftOffset
	return h, nil
}
