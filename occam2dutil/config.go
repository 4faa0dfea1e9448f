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

package occam2dutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/occam2d"
	"github.com/spatialmodel/occam2d/occamfile"
	"github.com/spf13/cast"
)

// MeshConfig creates a new mesh configuration from the "Mesh." values
// in cfg. Values missing from cfg keep their defaults.
func MeshConfig(cfg *viper.Viper) (occam2d.MeshConfig, error) {
	c := occam2d.DefaultMeshConfig()
	floats := []struct {
		name string
		v    *float64
	}{
		{"Mesh.MaxBlockWidth", &c.MaxBlockWidth},
		{"Mesh.LayersPerDecade", &c.LayersPerDecade},
		{"Mesh.FirstLayerThickness", &c.FirstLayerThickness},
		{"Mesh.BlockMergeThreshold", &c.BlockMergeThreshold},
	}
	for _, f := range floats {
		if err := getFloat(cfg, f.name, f.v); err != nil {
			return c, err
		}
	}
	ints := []struct {
		name string
		v    *int
	}{
		{"Mesh.SideBlockElements", &c.SideBlockElements},
		{"Mesh.BottomLayerElements", &c.BottomLayerElements},
		{"Mesh.NumLayers", &c.NumLayers},
	}
	for _, f := range ints {
		if err := getInt(cfg, f.name, f.v); err != nil {
			return c, err
		}
	}
	if v := cfg.Get("Mesh.MergeMode"); v != nil {
		s, err := cast.ToStringE(v)
		if err != nil {
			return c, fmt.Errorf("occam2d: Mesh.MergeMode: %v", err)
		}
		if c.MergeMode, err = occam2d.ParseMergeMode(s); err != nil {
			return c, err
		}
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("occam2d: parsing mesh configuration: %w", err)
	}
	return c, nil
}

func getFloat(cfg *viper.Viper, name string, dst *float64) error {
	v := cfg.Get(name)
	if v == nil {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return fmt.Errorf("occam2d: %s: %v", name, err)
	}
	*dst = f
	return nil
}

func getInt(cfg *viper.Viper, name string, dst *int) error {
	v := cfg.Get(name)
	if v == nil {
		return nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return fmt.Errorf("occam2d: %s: %v", name, err)
	}
	*dst = i
	return nil
}

func getString(cfg *viper.Viper, name string, dst *string) {
	if v := cfg.Get(name); v != nil {
		*dst = os.ExpandEnv(cast.ToString(v))
	}
}

// startupConfig creates the startup file settings from the "Startup."
// values in cfg.
func startupConfig(cfg *viper.Viper) (*occamfile.Startup, error) {
	s := occamfile.DefaultStartup()
	getString(cfg, "Startup.Description", &s.Description)
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"Startup.TargetRMS", &s.TargetRMS},
		{"Startup.LagrangeStart", &s.LagrangeStart},
		{"Startup.RoughnessStart", &s.RoughnessStart},
		{"Startup.MisfitStart", &s.MisfitStart},
		{"Startup.HalfspaceResistivity", &s.HalfspaceResistivity},
	} {
		if err := getFloat(cfg, f.name, f.v); err != nil {
			return nil, err
		}
	}
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"Startup.MaxIterations", &s.MaxIterations},
		{"Startup.RoughnessType", &s.RoughnessType},
		{"Startup.DebugLevel", &s.DebugLevel},
	} {
		if err := getInt(cfg, f.name, f.v); err != nil {
			return nil, err
		}
	}
	if !(s.HalfspaceResistivity > 0) {
		return nil, fmt.Errorf("occam2d: Startup.HalfspaceResistivity=%g but should be >0", s.HalfspaceResistivity)
	}
	if s.MaxIterations < 1 {
		return nil, fmt.Errorf("occam2d: Startup.MaxIterations=%d but should be >0", s.MaxIterations)
	}
	return s, nil
}

// NewJob creates a job from the configuration in cfg.
func NewJob(cfg *viper.Viper) (*Job, error) {
	mc, err := MeshConfig(cfg)
	if err != nil {
		return nil, err
	}
	st, err := startupConfig(cfg)
	if err != nil {
		return nil, err
	}
	j := &Job{
		OutputDir: ".",
		Files: Files{
			Data:    "occaminputdata.dat",
			Mesh:    "mesh",
			Model:   "inmodel",
			Startup: "startup",
		},
		Mesh:      mc,
		MeshTitle: "Mesh file generated with occam2d",
		Model:     occamfile.ModelHeader{Name: "Modelfile generated with occam2d"},
		Startup:   st,
		Overwrite: cast.ToBool(cfg.Get("Overwrite")),
	}
	getString(cfg, "SurveyFile", &j.SurveyFile)
	getString(cfg, "OutputDir", &j.OutputDir)
	getString(cfg, "DataFile", &j.Files.Data)
	getString(cfg, "MeshFile", &j.Files.Mesh)
	getString(cfg, "ModelFile", &j.Files.Model)
	getString(cfg, "StartupFile", &j.Files.Startup)
	getString(cfg, "SetupFile", &j.Files.Setup)
	getString(cfg, "Mesh.Title", &j.MeshTitle)
	getString(cfg, "Model.Name", &j.Model.Name)
	getString(cfg, "Model.Description", &j.Model.Description)
	getString(cfg, "Model.StaticsFile", &j.Model.StaticsFile)
	getString(cfg, "Model.PrejudiceFile", &j.Model.PrejudiceFile)

	if j.SurveyFile == "" {
		return nil, fmt.Errorf("occam2d: you need to specify a SurveyFile")
	}
	return j, nil
}
