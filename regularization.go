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
)

// ElementIndex is the index of a finite-element column in the
// horizontal mesh, counting from the left edge.
type ElementIndex int

// BlockIndex is the index of a regularization block within a layer,
// counting from the left edge.
type BlockIndex int

// Layer is one depth layer of the regularization grid.
type Layer struct {
	Rows      int       // number of mesh rows in the layer
	Thickness float64   // m
	Blocks    []int     // number of finite-element columns in each block
	Widths    []float64 // width of each block [m]
}

// NumBlocks returns the number of regularization blocks in the layer.
func (l *Layer) NumBlocks() int { return len(l.Blocks) }

// Elements returns the number of finite-element columns spanned by the layer.
func (l *Layer) Elements() int {
	var n int
	for _, e := range l.Blocks {
		n += e
	}
	return n
}

// FirstElement returns the index of the leftmost finite-element column
// in block b.
func (l *Layer) FirstElement(b BlockIndex) ElementIndex {
	var e int
	for _, n := range l.Blocks[:b] {
		e += n
	}
	return ElementIndex(e)
}

// BlockOf returns the block that finite-element column e belongs to.
// The second return value is false if e is outside of the layer.
func (l *Layer) BlockOf(e ElementIndex) (BlockIndex, bool) {
	if e < 0 {
		return 0, false
	}
	var end int
	for b, n := range l.Blocks {
		end += n
		if int(e) < end {
			return BlockIndex(b), true
		}
	}
	return 0, false
}

// Regularization holds the regularization blocks of every depth layer.
type Regularization struct {
	Layers []Layer
}

// NumParameters returns the total number of regularization blocks, which
// is the number of free parameters in the inversion.
func (r *Regularization) NumParameters() int {
	var n int
	for i := range r.Layers {
		n += r.Layers[i].NumBlocks()
	}
	return n
}

// mergeAdjacent returns a copy of cols where block b has been combined
// with block b+1.
func mergeAdjacent(cols []Column, b BlockIndex) []Column {
	o := make([]Column, 0, len(cols)-1)
	o = append(o, cols[:b]...)
	o = append(o, Column{
		Width:    cols[b].Width + cols[b+1].Width,
		Elements: cols[b].Elements + cols[b+1].Elements,
	})
	return append(o, cols[b+2:]...)
}

// mergeLayer combines adjacent blocks of cols, scanning from left to right,
// for as long as thickness is greater than threshold times their combined
// width. The side padding blocks at either end are never merged.
// cols is not modified.
func mergeLayer(cols []Column, thickness, threshold float64) []Column {
	o := cols
	for b := BlockIndex(1); int(b)+2 < len(o); {
		if thickness > threshold*(o[b].Width+o[b+1].Width) {
			o = mergeAdjacent(o, b)
			continue
		}
		b++
	}
	if len(o) == len(cols) {
		o = append([]Column(nil), cols...)
	}
	return o
}

// Regularize merges the columns of h into regularization blocks for each
// layer of v. Each layer starts either from the blocks of the layer above
// it or from the columns of h, depending on mode. Neither h nor v is
// modified.
func Regularize(h *HorizontalMesh, v *VerticalMesh, threshold float64, mode MergeMode) (*Regularization, error) {
	if h == nil || v == nil {
		return nil, fmt.Errorf("occam2d: Regularize needs both a horizontal and a vertical mesh")
	}
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("%w: BlockMergeThreshold=%g but should be >=0", ErrInvalidConfig, threshold)
	}
	if len(h.Columns) < 2 {
		return nil, fmt.Errorf("occam2d: horizontal mesh has %d columns but needs at least 2", len(h.Columns))
	}
	r := &Regularization{Layers: make([]Layer, v.NumLayers())}
	start := h.Columns
	for k := range r.Layers {
		t := v.LayerThickness(k)
		cols := mergeLayer(start, t, threshold)
		l := Layer{
			Rows:      v.Elements[k],
			Thickness: t,
			Blocks:    make([]int, len(cols)),
			Widths:    make([]float64, len(cols)),
		}
		for i, c := range cols {
			l.Blocks[i] = c.Elements
			l.Widths[i] = c.Width
		}
		r.Layers[k] = l
		if mode == Cumulative {
			start = cols
		}
	}
	return r, nil
}
