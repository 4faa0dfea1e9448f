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
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func testColumns() []Column {
	return []Column{{1000, 3}, {100, 2}, {100, 2}, {100, 2}, {1000, 3}}
}

func TestMergeAdjacent(t *testing.T) {
	cols := testColumns()
	o := mergeAdjacent(cols, 2)
	want := []Column{{1000, 3}, {100, 2}, {200, 4}, {1000, 3}}
	if !reflect.DeepEqual(o, want) {
		t.Errorf("merged:\n%v", pretty.Diff(o, want))
	}
	if !reflect.DeepEqual(cols, testColumns()) {
		t.Errorf("input was modified: %v", cols)
	}
}

func TestMergeLayer(t *testing.T) {
	tests := []struct {
		name                 string
		thickness, threshold float64
		want                 []Column
	}{
		{
			name:      "merge all interior",
			thickness: 1000,
			threshold: 0.75,
			want:      []Column{{1000, 3}, {300, 6}, {1000, 3}},
		},
		{
			name:      "tie does not merge",
			thickness: 150,
			threshold: 0.75,
			want:      testColumns(),
		},
		{
			name:      "just above tie",
			thickness: 150.001,
			threshold: 0.75,
			want:      []Column{{1000, 3}, {200, 4}, {100, 2}, {1000, 3}},
		},
		{
			name:      "zero threshold",
			thickness: 1,
			threshold: 0,
			want:      []Column{{1000, 3}, {300, 6}, {1000, 3}},
		},
		{
			name:      "large threshold",
			thickness: 1e6,
			threshold: 1e9,
			want:      testColumns(),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cols := testColumns()
			o := mergeLayer(cols, test.thickness, test.threshold)
			if !reflect.DeepEqual(o, test.want) {
				t.Errorf("merged:\n%v", pretty.Diff(o, test.want))
			}
			if !reflect.DeepEqual(cols, testColumns()) {
				t.Errorf("input was modified: %v", cols)
			}
			o[0].Width = -1
			if cols[0].Width == -1 {
				t.Error("result shares memory with the input")
			}
		})
	}
}

func TestMergeLayerFewColumns(t *testing.T) {
	for n := 0; n < 4; n++ {
		cols := testColumns()[:n]
		o := mergeLayer(cols, 1e9, 0)
		if len(o) != n {
			t.Errorf("%d columns: merged into %d", n, len(o))
		}
	}
}

func TestLayerIndices(t *testing.T) {
	l := Layer{Blocks: []int{3, 6, 3}}
	if l.NumBlocks() != 3 || l.Elements() != 12 {
		t.Errorf("%d blocks, %d elements", l.NumBlocks(), l.Elements())
	}
	firsts := []ElementIndex{0, 3, 9}
	for b, want := range firsts {
		if e := l.FirstElement(BlockIndex(b)); e != want {
			t.Errorf("block %d starts at element %d, want %d", b, e, want)
		}
		if got, ok := l.BlockOf(want); !ok || got != BlockIndex(b) {
			t.Errorf("element %d is in block %d (%v), want %d", want, got, ok, b)
		}
	}
	blockOf := map[ElementIndex]BlockIndex{1: 0, 2: 0, 4: 1, 8: 1, 10: 2, 11: 2}
	for e, want := range blockOf {
		if b, ok := l.BlockOf(e); !ok || b != want {
			t.Errorf("element %d is in block %d (%v), want %d", e, b, ok, want)
		}
	}
	for _, e := range []ElementIndex{-1, 12, 100} {
		if _, ok := l.BlockOf(e); ok {
			t.Errorf("element %d should be outside of the layer", e)
		}
	}
}

// smallMeshes returns the meshes for three stations 100 m apart
// with three padding elements and three layers.
func smallMeshes(t *testing.T) (*HorizontalMesh, *VerticalMesh) {
	p, err := DensifyProfile([]float64{0, 100, 200}, 500)
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHorizontalMesh(p, 3)
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVerticalMesh(3, 5, 50, 1)
	if err != nil {
		t.Fatal(err)
	}
	return h, v
}

func TestRegularize(t *testing.T) {
	h, v := smallMeshes(t)
	r, err := Regularize(h, v, 0.5, Cumulative)
	if err != nil {
		t.Fatal(err)
	}
	want := []Layer{
		{Rows: 2, Thickness: 50, Blocks: []int{3, 2, 2, 2, 2, 2, 3}, Widths: []float64{1950, 100, 100, 100, 100, 100, 1950}},
		{Rows: 2, Thickness: 50, Blocks: []int{3, 2, 2, 2, 2, 2, 3}, Widths: []float64{1950, 100, 100, 100, 100, 100, 1950}},
		{Rows: 1, Thickness: 150, Blocks: []int{3, 4, 4, 2, 3}, Widths: []float64{1950, 200, 200, 100, 1950}},
	}
	if !reflect.DeepEqual(r.Layers, want) {
		t.Errorf("layers:\n%v", pretty.Diff(r.Layers, want))
	}
	if r.NumParameters() != 19 {
		t.Errorf("have %d parameters, want 19", r.NumParameters())
	}
}

func TestRegularizeProperties(t *testing.T) {
	p, err := DensifyProfile([]float64{0, 1000, 2500, 3000, 4200, 4300}, 500)
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHorizontalMesh(p, 7)
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVerticalMesh(30, 5, 250, 4)
	if err != nil {
		t.Fatal(err)
	}
	columns := append([]Column(nil), h.Columns...)

	for _, mode := range []MergeMode{Cumulative, Independent} {
		r, err := Regularize(h, v, 0.75, mode)
		if err != nil {
			t.Fatal(err)
		}
		if len(r.Layers) != v.NumLayers() {
			t.Fatalf("%v: have %d layers", mode, len(r.Layers))
		}
		for k, l := range r.Layers {
			if l.Elements() != h.Elements() {
				t.Errorf("%v layer %d: %d elements, want %d", mode, k, l.Elements(), h.Elements())
			}
			if l.NumBlocks() < 3 {
				t.Errorf("%v layer %d: %d blocks", mode, k, l.NumBlocks())
			}
			if l.Blocks[0] != 7 || l.Blocks[len(l.Blocks)-1] != 7 {
				t.Errorf("%v layer %d: padding blocks were merged: %v", mode, k, l.Blocks)
			}
			if l.Rows != v.Elements[k] {
				t.Errorf("%v layer %d: %d rows, want %d", mode, k, l.Rows, v.Elements[k])
			}
			if mode == Cumulative && k > 0 && l.NumBlocks() > r.Layers[k-1].NumBlocks() {
				t.Errorf("layer %d has more blocks than the layer above it", k)
			}
			if mode == Independent {
				cols := mergeLayer(h.Columns, l.Thickness, 0.75)
				if len(cols) != l.NumBlocks() {
					t.Errorf("independent layer %d: %d blocks, want %d", k, l.NumBlocks(), len(cols))
				}
			}
		}
		if !reflect.DeepEqual(h.Columns, columns) {
			t.Errorf("%v: horizontal mesh was modified", mode)
		}
	}
}

func TestRegularizeThresholdExtremes(t *testing.T) {
	p, err := DensifyProfile([]float64{0, 1000, 2500, 3000}, 500)
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHorizontalMesh(p, 7)
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVerticalMesh(20, 5, 250, 4)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		threshold float64
		blocks    int
	}{
		{threshold: 0, blocks: 3},
		{threshold: 1e9, blocks: len(h.Columns)},
	}
	for _, test := range tests {
		r, err := Regularize(h, v, test.threshold, Cumulative)
		if err != nil {
			t.Fatal(err)
		}
		for k, l := range r.Layers {
			if l.NumBlocks() != test.blocks {
				t.Errorf("threshold %g layer %d: %d blocks, want %d", test.threshold, k, l.NumBlocks(), test.blocks)
			}
		}
	}
}

func TestRegularizeErrors(t *testing.T) {
	h, v := smallMeshes(t)
	if _, err := Regularize(nil, v, 0.75, Cumulative); err == nil {
		t.Error("expected an error for a missing horizontal mesh")
	}
	if _, err := Regularize(h, v, -1, Cumulative); err == nil {
		t.Error("expected an error for a negative threshold")
	}
}
