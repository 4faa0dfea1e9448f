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
	"reflect"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestDensifyProfile(t *testing.T) {
	stations := []float64{0, 1000, 2500, 3000}
	p, err := DensifyProfile(stations, 500)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 1000. / 3, 2000. / 3, 1000, 1375, 1750, 2125, 2500, 2750, 3000}
	if len(p.Offsets) != len(want) {
		t.Fatalf("have %d offsets, want %d: %v", len(p.Offsets), len(want), p.Offsets)
	}
	for i, w := range want {
		if !floats.EqualWithinAbsOrRel(p.Offsets[i], w, 1e-9, 1e-12) {
			t.Errorf("offset %d: have %g, want %g", i, p.Offsets[i], w)
		}
	}
	if !reflect.DeepEqual(p.Real, []int{0, 3, 7, 9}) {
		t.Errorf("real station indices: %v", p.Real)
	}
	for i, r := range p.Real {
		if p.Offsets[r] != stations[i] {
			t.Errorf("station %d moved from %g to %g", i, stations[i], p.Offsets[r])
		}
	}
	if p.Dummies() != 6 {
		t.Errorf("have %d dummy stations, want 6", p.Dummies())
	}
	if !reflect.DeepEqual(stations, []float64{0, 1000, 2500, 3000}) {
		t.Errorf("input was modified: %v", stations)
	}
}

func TestDensifyProfileMaxSpacing(t *testing.T) {
	stations := []float64{-1250, -1000, 13, 250.5, 2999, 3000, 7777.7, 20000}
	for _, maxWidth := range []float64{1, 33.3, 250, 500, 4000, 1e5} {
		p, err := DensifyProfile(stations, maxWidth)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(p.Offsets); i++ {
			d := p.Offsets[i] - p.Offsets[i-1]
			if d <= 0 || d > maxWidth+1e-9 {
				t.Errorf("max width %g: spacing %d is %g", maxWidth, i, d)
			}
		}
		if len(p.Real) != len(stations) {
			t.Errorf("max width %g: %d real stations", maxWidth, len(p.Real))
		}
	}
}

func TestDensifyProfileErrors(t *testing.T) {
	tests := []struct {
		name     string
		stations []float64
		maxWidth float64
		err      error
	}{
		{name: "empty", stations: nil, maxWidth: 500, err: ErrTooFewStations},
		{name: "one station", stations: []float64{10}, maxWidth: 500, err: ErrTooFewStations},
		{name: "duplicate", stations: []float64{0, 100, 100}, maxWidth: 500, err: ErrNotIncreasing},
		{name: "decreasing", stations: []float64{0, 100, 50}, maxWidth: 500, err: ErrNotIncreasing},
		{name: "nan", stations: []float64{0, math.NaN()}, maxWidth: 500, err: ErrNotIncreasing},
		{name: "zero width", stations: []float64{0, 100}, maxWidth: 0, err: ErrInvalidConfig},
		{name: "negative width", stations: []float64{0, 100}, maxWidth: -5, err: ErrInvalidConfig},
		{name: "too many dummies", stations: []float64{0, 1e300}, maxWidth: 1e-300, err: ErrInvalidConfig},
		{name: "infinite gap", stations: []float64{-1e308, 1e308}, maxWidth: 1, err: ErrInvalidConfig},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DensifyProfile(test.stations, test.maxWidth)
			if !errors.Is(err, test.err) {
				t.Errorf("have error %v, want %v", err, test.err)
			}
		})
	}
}
