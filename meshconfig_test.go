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
	"errors"
	"math"
	"testing"
)

func TestDefaultMeshConfig(t *testing.T) {
	c := DefaultMeshConfig()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestMeshConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *MeshConfig)
	}{
		{name: "MaxBlockWidth", modify: func(c *MeshConfig) { c.MaxBlockWidth = 0 }},
		{name: "MaxBlockWidth inf", modify: func(c *MeshConfig) { c.MaxBlockWidth = math.Inf(1) }},
		{name: "LayersPerDecade", modify: func(c *MeshConfig) { c.LayersPerDecade = -1 }},
		{name: "FirstLayerThickness", modify: func(c *MeshConfig) { c.FirstLayerThickness = math.NaN() }},
		{name: "BlockMergeThreshold", modify: func(c *MeshConfig) { c.BlockMergeThreshold = -0.1 }},
		{name: "SideBlockElements", modify: func(c *MeshConfig) { c.SideBlockElements = 0 }},
		{name: "BottomLayerElements", modify: func(c *MeshConfig) { c.BottomLayerElements = 0 }},
		{name: "NumLayers", modify: func(c *MeshConfig) { c.NumLayers = 2 }},
		{name: "MergeMode", modify: func(c *MeshConfig) { c.MergeMode = 5 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := DefaultMeshConfig()
			test.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("have %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestParseMergeMode(t *testing.T) {
	tests := []struct {
		in   string
		want MergeMode
	}{
		{in: "", want: Cumulative},
		{in: "cumulative", want: Cumulative},
		{in: " Independent ", want: Independent},
	}
	for _, test := range tests {
		m, err := ParseMergeMode(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
		}
		if m != test.want {
			t.Errorf("%q: have %v, want %v", test.in, m, test.want)
		}
		if m2, _ := ParseMergeMode(m.String()); m2 != m {
			t.Errorf("%v does not parse back to itself", m)
		}
	}
	if _, err := ParseMergeMode("sideways"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("have %v, want %v", err, ErrInvalidConfig)
	}
}
