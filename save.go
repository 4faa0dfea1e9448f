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
	"encoding/gob"
	"fmt"
	"io"
)

// savedSetup is the part of a Setup that is written by Save.
type savedSetup struct {
	Config         MeshConfig
	Stations       []float64
	Profile        *Profile
	Horizontal     *HorizontalMesh
	Vertical       *VerticalMesh
	Regularization *Regularization
}

// Save returns a function that saves the meshes and regularization grid
// of a Setup to w.
func Save(w io.Writer) SetupManipulator {
	return func(s *Setup) error {
		if s.Regularization == nil {
			return fmt.Errorf("occam2d.Setup.Save: the setup has not been initialized")
		}
		e := gob.NewEncoder(w)
		if err := e.Encode(savedSetup{
			Config:         s.Config,
			Stations:       s.Stations,
			Profile:        s.Profile,
			Horizontal:     s.Horizontal,
			Vertical:       s.Vertical,
			Regularization: s.Regularization,
		}); err != nil {
			return fmt.Errorf("occam2d.Setup.Save: %v", err)
		}
		return nil
	}
}

// Load returns a function that loads the data from a previously Saved file
// into a Setup.
func Load(r io.Reader) SetupManipulator {
	return func(s *Setup) error {
		dec := gob.NewDecoder(r)
		var d savedSetup
		if err := dec.Decode(&d); err != nil {
			return fmt.Errorf("occam2d.Setup.Load: %v", err)
		}
		if d.Horizontal == nil || d.Vertical == nil || d.Regularization == nil {
			return fmt.Errorf("occam2d.Setup.Load: saved setup is incomplete")
		}
		s.Config = d.Config
		s.Stations = d.Stations
		s.Profile = d.Profile
		s.Horizontal = d.Horizontal
		s.Vertical = d.Vertical
		s.Regularization = d.Regularization
		return nil
	}
}
