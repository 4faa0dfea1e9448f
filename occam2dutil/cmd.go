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

// Package occam2dutil contains the command-line interface for creating
// and running Occam2D inversions.
package occam2dutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/occam2d"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives the progress messages of all commands.
var Log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	d := occam2d.DefaultMeshConfig()

	// Options are the configuration options available to occam2d.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the least severe level of log messages to print.
              One of debug, info, warning, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "SurveyFile",
			usage: `
              SurveyFile is the path to the survey to create the inversion
              setup for. Files ending in '.toml' are read as survey
              descriptions; any other file is read as an Occam2D data file.
              It can contain environment variables.`,
			shorthand:  "s",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory the Occam2D input files are written
              to. It is created if it does not exist and can contain
              environment variables.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Overwrite",
			usage: `
              Overwrite specifies whether existing input files should be
              replaced. If false, a numbered suffix is added to the name of any
              file that already exists.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "DataFile",
			usage: `
              DataFile is the name of the Occam2D data file.`,
			defaultVal: "occaminputdata.dat",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "MeshFile",
			usage: `
              MeshFile is the name of the Occam2D mesh file.`,
			defaultVal: "mesh",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "ModelFile",
			usage: `
              ModelFile is the name of the Occam2D model file.`,
			defaultVal: "inmodel",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "StartupFile",
			usage: `
              StartupFile is the name of the Occam2D startup file.`,
			defaultVal: "startup",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "SetupFile",
			usage: `
              SetupFile is the path of a file to save the mesh and
              regularization grid to so they can be inspected later with the
              describe command. If empty, nothing is saved.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags(), describeCmd.Flags()},
		},
		{
			name: "Mesh.MaxBlockWidth",
			usage: `
              Mesh.MaxBlockWidth is the largest allowed distance in meters
              between adjacent stations. Dummy stations are added to
              break up wider gaps.`,
			defaultVal: d.MaxBlockWidth,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.SideBlockElements",
			usage: `
              Mesh.SideBlockElements is the number of padding elements
              added at each end of the profile.`,
			defaultVal: d.SideBlockElements,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.BottomLayerElements",
			usage: `
              Mesh.BottomLayerElements is the number of padding elements
              below the deepest layer.`,
			defaultVal: d.BottomLayerElements,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.LayersPerDecade",
			usage: `
              Mesh.LayersPerDecade is the number of layers per decade of
              depth.`,
			defaultVal: d.LayersPerDecade,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.FirstLayerThickness",
			usage: `
              Mesh.FirstLayerThickness is the thickness of the surface layer
              in meters. No layer is thinner than this.`,
			defaultVal: d.FirstLayerThickness,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.BlockMergeThreshold",
			usage: `
              Mesh.BlockMergeThreshold controls how regularization blocks
              grow with depth. Two adjacent blocks are merged when the layer
              thickness is larger than this fraction of their combined width.`,
			defaultVal: d.BlockMergeThreshold,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.NumLayers",
			usage: `
              Mesh.NumLayers is the number of regularization layers,
              including the bottom padding layer.`,
			defaultVal: d.NumLayers,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.MergeMode",
			usage: `
              Mesh.MergeMode is either 'cumulative', where each layer
              merges the blocks of the layer above it, or 'independent',
              where each layer merges the mesh columns directly.`,
			defaultVal: d.MergeMode.String(),
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Mesh.Title",
			usage: `
              Mesh.Title is the first line of the mesh file.`,
			defaultVal: "Mesh file generated with occam2d",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Model.Name",
			usage: `
              Model.Name is the name written to the model file.`,
			defaultVal: "Modelfile generated with occam2d",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Model.Description",
			usage: `
              Model.Description is the description written to the model file.
              If empty, a key identifying the mesh configuration and station
              offsets is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Model.StaticsFile",
			usage: `
              Model.StaticsFile is the optional Occam2D statics file.`,
			defaultVal: "none",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Model.PrejudiceFile",
			usage: `
              Model.PrejudiceFile is the optional Occam2D prejudice file.`,
			defaultVal: "none",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.Description",
			usage: `
              Startup.Description is the description written to the startup
              file.`,
			defaultVal: "occam2d generated setup",
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.MaxIterations",
			usage: `
              Startup.MaxIterations is the largest number of iterations
              Occam2D will run.`,
			defaultVal: 30,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.TargetRMS",
			usage: `
              Startup.TargetRMS is the normalized RMS misfit the inversion
              aims for.`,
			defaultVal: 1.5,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.RoughnessType",
			usage: `
              Startup.RoughnessType is the Occam2D roughness penalty type
              (IRUF).`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.DebugLevel",
			usage: `
              Startup.DebugLevel is the amount of diagnostic output Occam2D
              prints.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.LagrangeStart",
			usage: `
              Startup.LagrangeStart is the starting value of the Lagrange
              multiplier, as log10.`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.RoughnessStart",
			usage: `
              Startup.RoughnessStart is the roughness of the starting model.`,
			defaultVal: 1e7,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.MisfitStart",
			usage: `
              Startup.MisfitStart is the misfit of the starting model.`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Startup.HalfspaceResistivity",
			usage: `
              Startup.HalfspaceResistivity is the resistivity in Ω m of the
              uniform starting model.`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{meshCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Occam.Executable",
			usage: `
              Occam.Executable is the Occam2D program to run. It can be a
              path or the name of a program on the PATH.`,
			defaultVal: "Occam2D",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Occam.Timeout",
			usage: `
              Occam.Timeout is the longest time the inversion is allowed to
              run, for example '2h'. Zero means no limit.`,
			defaultVal: "0s",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("OCCAM2D")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(meshCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(describeCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up the logger.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("occam2d: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("occam2d: LogLevel: %v", err)
	}
	Log.SetLevel(level)
	Log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "occam2d",
	Short: "Set up and run Occam2D resistivity inversions.",
	Long: `occam2d creates the mesh, regularization grid, and input files
for 2-D magnetotelluric resistivity inversions with Occam2D.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'OCCAM2D_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	SilenceUsage:      true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of occam2d.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("occam2d v%s\n", occam2d.Version)
	},
	DisableAutoGenTag: true,
}

// meshCmd creates the Occam2D input files.
var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Create the Occam2D input files",
	Long: `mesh reads the survey in SurveyFile, creates the finite-element mesh
and regularization grid, and writes the data, mesh, model, and startup files
to OutputDir. No file is written if any part of the setup fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := NewJob(Cfg)
		if err != nil {
			return err
		}
		_, err = job.Write(Log)
		return err
	},
	DisableAutoGenTag: true,
}

// runCmd creates the input files and starts the inversion.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Create the input files and run Occam2D",
	Long: `run does everything the mesh command does and then runs the
Occam2D program given by Occam.Executable on the startup file, in OutputDir.
The output of Occam2D is written to the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := NewJob(Cfg)
		if err != nil {
			return err
		}
		timeout, err := cast.ToDurationE(Cfg.Get("Occam.Timeout"))
		if err != nil {
			return fmt.Errorf("occam2d: Occam.Timeout: %v", err)
		}
		files, err := job.Write(Log)
		if err != nil {
			return err
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return RunOccam(ctx, os.ExpandEnv(Cfg.GetString("Occam.Executable")), files.Startup, Log)
	},
	DisableAutoGenTag: true,
}

// describeCmd prints a summary of a saved setup.
var describeCmd = &cobra.Command{
	Use:   "describe [setup file]",
	Short: "Describe a saved setup",
	Long: `describe prints a summary of the mesh and regularization grid
saved in the given file, or in SetupFile if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := os.ExpandEnv(Cfg.GetString("SetupFile"))
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("occam2d: no setup file specified")
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("occam2d: opening setup file: %v", err)
		}
		defer f.Close()
		return Describe(cmd.OutOrStdout(), f)
	},
	DisableAutoGenTag: true,
}
