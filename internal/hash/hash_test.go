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

package hash

import (
	"math"
	"testing"
)

type config struct {
	Width  float64
	Layers int
	Names  map[string]int
}

func TestKey(t *testing.T) {
	a := &config{Width: 500, Layers: 30, Names: map[string]int{"a": 1, "b": 2, "c": 3}}
	b := &config{Width: 500, Layers: 30, Names: map[string]int{"c": 3, "b": 2, "a": 1}}
	if Key(a, []float64{0, 1}) != Key(b, []float64{0, 1}) {
		t.Error("equal objects have different keys")
	}
	if len(Key(a)) != 16 {
		t.Errorf("key %q has the wrong length", Key(a))
	}
	b.Layers = 31
	if Key(a) == Key(b) {
		t.Error("different objects have the same key")
	}
	if Key([]float64{0, 1}, []float64{2}) == Key([]float64{0}, []float64{1, 2}) {
		t.Error("argument boundaries are ignored")
	}
	if Key(math.NaN()) != Key(math.NaN()) {
		t.Error("NaN key is not stable")
	}
}
