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
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/occam2d"
	"github.com/spatialmodel/occam2d/internal/hash"
	"github.com/spatialmodel/occam2d/occamfile"
)

// Files holds the names of the files making up an Occam2D setup.
type Files struct {
	Data, Mesh, Model, Startup string

	// Setup is the file the mesh and regularization grid are saved to.
	// If it is empty, they are not saved.
	Setup string
}

// Job creates the Occam2D input files for one survey.
type Job struct {
	SurveyFile string
	OutputDir  string

	// Files holds the names of the files to create in OutputDir.
	// Files.Setup is a path and is not placed in OutputDir.
	Files Files

	// Overwrite specifies whether existing files should be replaced.
	// If false, a numbered suffix is added to the name of any file that
	// already exists.
	Overwrite bool

	Mesh      occam2d.MeshConfig
	MeshTitle string
	Model     occamfile.ModelHeader
	Startup   *occamfile.Startup

	// now returns the time written to the startup file.
	now func() time.Time
}

// Write reads the survey, creates the mesh and regularization grid, and
// writes the input files. All files are rendered before any of them is
// written, so nothing is written if there is an error in the setup.
// It returns the paths of the files that were written.
func (j *Job) Write(log logrus.FieldLogger) (Files, error) {
	if log == nil {
		l := logrus.New()
		l.Out = ioutil.Discard
		log = l
	}
	survey, err := readSurvey(j.SurveyFile)
	if err != nil {
		return Files{}, err
	}
	if len(survey.Data) == 0 {
		log.WithField("survey", j.SurveyFile).Warn("survey has no data")
	}
	offsets := survey.Offsets()
	key := hash.Key(j.Mesh, offsets)
	log = log.WithField("key", key)

	s, err := occam2d.NewSetup(j.Mesh, offsets, log)
	if err != nil {
		return Files{}, err
	}

	if err := os.MkdirAll(j.OutputDir, 0755); err != nil {
		return Files{}, fmt.Errorf("occam2d: creating output directory: %v", err)
	}
	paths := j.paths()

	model := j.Model
	model.MeshFile = filepath.Base(paths.Mesh)
	if model.Description == "" {
		model.Description = "occam2d mesh " + key
	}
	startup := *j.Startup
	startup.ModelFile = filepath.Base(paths.Model)
	startup.DataFile = filepath.Base(paths.Data)
	startup.NumParameters = s.Regularization.NumParameters()
	if j.now != nil {
		startup.DateTime = j.now()
	} else {
		startup.DateTime = time.Now()
	}

	outputs := []struct {
		path   string
		render func(io.Writer) error
	}{
		{paths.Data, func(w io.Writer) error { return occamfile.WriteData(w, survey) }},
		{paths.Mesh, func(w io.Writer) error { return occamfile.WriteMesh(w, j.MeshTitle, s.Horizontal, s.Vertical) }},
		{paths.Model, func(w io.Writer) error { return occamfile.WriteModel(w, model, s.Horizontal, s.Regularization) }},
		{paths.Startup, func(w io.Writer) error { return occamfile.WriteStartup(w, &startup) }},
	}
	if paths.Setup != "" {
		outputs = append(outputs, struct {
			path   string
			render func(io.Writer) error
		}{paths.Setup, func(w io.Writer) error {
			s.InitFuncs = []occam2d.SetupManipulator{occam2d.Save(w)}
			return s.Init()
		}})
	}

	bufs := make([]bytes.Buffer, len(outputs))
	for i, o := range outputs {
		if err := o.render(&bufs[i]); err != nil {
			return Files{}, err
		}
	}
	for i, o := range outputs {
		if err := ioutil.WriteFile(o.path, bufs[i].Bytes(), 0644); err != nil {
			return Files{}, fmt.Errorf("occam2d: writing input file: %v", err)
		}
		log.WithField("file", o.path).Info("wrote file")
	}
	return paths, nil
}

// paths returns the paths of the files to write.
func (j *Job) paths() Files {
	taken := make(map[string]bool)
	path := func(p string) string {
		if p == "" {
			return ""
		}
		if !j.Overwrite {
			p = uniqueFilename(p, taken)
		}
		taken[p] = true
		return p
	}
	return Files{
		Data:    path(filepath.Join(j.OutputDir, j.Files.Data)),
		Mesh:    path(filepath.Join(j.OutputDir, j.Files.Mesh)),
		Model:   path(filepath.Join(j.OutputDir, j.Files.Model)),
		Startup: path(filepath.Join(j.OutputDir, j.Files.Startup)),
		Setup:   path(j.Files.Setup),
	}
}

// uniqueFilename returns path if no file exists there and it is not in
// taken. Otherwise it adds the smallest numbered suffix that makes it so.
func uniqueFilename(path string, taken map[string]bool) string {
	free := func(p string) bool {
		if taken[p] {
			return false
		}
		_, err := os.Stat(p)
		return os.IsNotExist(err)
	}
	if free(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		p := fmt.Sprintf("%s_%d%s", base, i, ext)
		if free(p) {
			return p
		}
	}
}

// readSurvey reads a TOML survey description if path ends in ".toml",
// or an Occam2D data file otherwise.
func readSurvey(path string) (*occamfile.Survey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("occam2d: opening survey: %v", err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return occamfile.ReadSurvey(f)
	}
	return occamfile.ReadData(f)
}
