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

// maxIntervals is the largest number of intervals a single gap between
// stations can be split into.
const maxIntervals = math.MaxInt32

// Profile holds station offsets along the survey line after dummy
// stations have been inserted between the real ones.
type Profile struct {
	// Offsets are the real and dummy station offsets in increasing order.
	Offsets []float64

	// Real holds the index in Offsets of each of the original stations.
	Real []int
}

// Dummies returns the number of dummy stations in p.
func (p *Profile) Dummies() int {
	return len(p.Offsets) - len(p.Real)
}

// checkStations makes sure there are enough stations and that their
// offsets are finite and strictly increasing.
func checkStations(stations []float64) error {
	if len(stations) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewStations, len(stations))
	}
	for i, s := range stations {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: station %d has offset %g", ErrNotIncreasing, i, s)
		}
		if i > 0 && !(s > stations[i-1]) {
			return fmt.Errorf("%w: station %d (%g) is not beyond station %d (%g)",
				ErrNotIncreasing, i, s, i-1, stations[i-1])
		}
	}
	return nil
}

// DensifyProfile inserts evenly spaced dummy stations between each pair of
// adjacent stations so that no spacing is larger than maxBlockWidth.
// A gap g is split into floor(g/maxBlockWidth)+1 equal intervals.
// stations is not modified.
func DensifyProfile(stations []float64, maxBlockWidth float64) (*Profile, error) {
	if !(maxBlockWidth > 0) || math.IsInf(maxBlockWidth, 0) {
		return nil, fmt.Errorf("%w: MaxBlockWidth=%g but should be >0", ErrInvalidConfig, maxBlockWidth)
	}
	if err := checkStations(stations); err != nil {
		return nil, err
	}
	p := &Profile{
		Offsets: []float64{stations[0]},
		Real:    []int{0},
	}
	for i := 1; i < len(stations); i++ {
		lo, hi := stations[i-1], stations[i]
		r := math.Floor((hi - lo) / maxBlockWidth)
		if math.IsInf(r, 0) || r >= maxIntervals {
			return nil, fmt.Errorf("%w: stations %d and %d (%g, %g) are too far apart for MaxBlockWidth=%g",
				ErrInvalidConfig, i-1, i, lo, hi, maxBlockWidth)
		}
		n := int(r) + 1
		seg := make([]float64, n+1)
		floats.Span(seg, lo, hi)
		seg[n] = hi
		p.Offsets = append(p.Offsets, seg[1:]...)
		p.Real = append(p.Real, len(p.Offsets)-1)
	}
	return p, nil
}
