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
	"io/ioutil"

	"github.com/sirupsen/logrus"
)

// Setup holds the mesh and regularization grid for one Occam2D inversion.
type Setup struct {
	Config   MeshConfig
	Stations []float64 // original station offsets [m]

	Profile        *Profile
	Horizontal     *HorizontalMesh
	Vertical       *VerticalMesh
	Regularization *Regularization

	// InitFuncs are functions to be called in the given order
	// when Init is called.
	InitFuncs []SetupManipulator

	// Log receives progress messages. If it is nil, messages are discarded.
	Log logrus.FieldLogger
}

// SetupManipulator is a class of functions that operate on the
// entire Setup.
type SetupManipulator func(s *Setup) error

// Init runs the InitFuncs of s in order, stopping at the first error.
func (s *Setup) Init() error {
	if s.Log == nil {
		l := logrus.New()
		l.Out = ioutil.Discard
		s.Log = l
	}
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// NewSetup validates c and builds the complete mesh and regularization
// grid for the given station offsets.
func NewSetup(c MeshConfig, stations []float64, log logrus.FieldLogger) (*Setup, error) {
	s := &Setup{
		InitFuncs: c.Discretize(stations),
		Log:       log,
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Discretize returns the functions that build a complete Setup from
// stations, in the order they need to be run.
func (c MeshConfig) Discretize(stations []float64) []SetupManipulator {
	return []SetupManipulator{
		c.Densify(stations),
		c.HorizontalMesh(),
		c.VerticalMesh(),
		c.Regularize(),
	}
}

// Densify returns a function that validates the configuration and
// inserts dummy stations between stations.
func (c MeshConfig) Densify(stations []float64) SetupManipulator {
	return func(s *Setup) error {
		if err := c.Validate(); err != nil {
			return err
		}
		s.Config = c
		s.Stations = append([]float64(nil), stations...)
		p, err := DensifyProfile(s.Stations, c.MaxBlockWidth)
		if err != nil {
			return err
		}
		s.Profile = p
		s.Log.WithFields(logrus.Fields{
			"stations": len(stations),
			"dummies":  p.Dummies(),
		}).Info("densified station profile")
		return nil
	}
}

// HorizontalMesh returns a function that creates the horizontal mesh
// from the densified profile.
func (c MeshConfig) HorizontalMesh() SetupManipulator {
	return func(s *Setup) error {
		if s.Profile == nil {
			return fmt.Errorf("occam2d: the station profile must be densified before creating the horizontal mesh")
		}
		h, err := NewHorizontalMesh(s.Profile, c.SideBlockElements)
		if err != nil {
			return err
		}
		s.Horizontal = h
		s.Log.WithFields(logrus.Fields{
			"nodes":          h.NumNodes(),
			"columns":        len(h.Columns),
			"binding_offset": h.BindingOffset,
		}).Info("created horizontal mesh")
		return nil
	}
}

// VerticalMesh returns a function that creates the vertical mesh.
func (c MeshConfig) VerticalMesh() SetupManipulator {
	return func(s *Setup) error {
		v, err := NewVerticalMesh(c.NumLayers, c.LayersPerDecade, c.FirstLayerThickness, c.BottomLayerElements)
		if err != nil {
			return err
		}
		s.Vertical = v
		s.Log.WithFields(logrus.Fields{
			"nodes": v.NumNodes(),
			"depth": v.Depth(),
		}).Info("created vertical mesh")
		return nil
	}
}

// Regularize returns a function that merges the horizontal mesh columns
// into regularization blocks for every layer.
func (c MeshConfig) Regularize() SetupManipulator {
	return func(s *Setup) error {
		if s.Horizontal == nil || s.Vertical == nil {
			return fmt.Errorf("occam2d: both meshes must be created before the regularization grid")
		}
		r, err := Regularize(s.Horizontal, s.Vertical, c.BlockMergeThreshold, c.MergeMode)
		if err != nil {
			return err
		}
		s.Regularization = r
		s.Log.WithFields(logrus.Fields{
			"layers":     len(r.Layers),
			"parameters": r.NumParameters(),
			"merge_mode": c.MergeMode,
		}).Info("created regularization grid")
		return nil
	}
}
