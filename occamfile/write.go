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

package occamfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spatialmodel/occam2d"
)

// Format identifiers and fixed values written to the Occam2D input files.
const (
	ModelFormat   = "OCCAM2MTMOD_1.0"
	StartupFormat = "OCCAM_ITER"
	MeshType      = "PW2D"
)

// writer keeps the first error returned by the underlying writer so that
// callers can check it once at the end.
type writer struct {
	w   *bufio.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: bufio.NewWriter(w)}
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) flush(file string) error {
	if w.err == nil {
		w.err = w.w.Flush()
	}
	if w.err != nil {
		return fmt.Errorf("occamfile: writing %s file: %v", file, w.err)
	}
	return nil
}

// WriteData writes s in Occam2D data file format.
func WriteData(w io.Writer, s *Survey) error {
	o := newWriter(w)
	format := s.Format
	if format == "" {
		format = DataFormat
	}
	o.printf("FORMAT:%s%s\n", strings.Repeat(" ", 11), format)
	o.printf("TITLE:%s%s\n", strings.Repeat(" ", 12), s.Title)
	o.printf("SITES:%s%d\n", strings.Repeat(" ", 12), len(s.Stations))
	for _, st := range s.Stations {
		o.printf("    %s\n", st.Name)
	}
	o.printf("OFFSETS (M):\n")
	for _, st := range s.Stations {
		o.printf("    %g\n", st.Offset)
	}
	o.printf("FREQUENCIES:     %d\n", len(s.Frequencies))
	for _, f := range s.Frequencies {
		o.printf("    %g\n", f)
	}
	o.printf("DATA BLOCKS:     %d\n", len(s.Data))
	o.printf("SITE    FREQ    TYPE    DATUM    ERROR\n")
	for _, d := range s.Data {
		o.printf("%d    %d    %d    %g    %g\n", d.Site, d.Freq, d.Type, d.Value, d.Error)
	}
	return o.flush("data")
}

// WriteMesh writes the finite-element mesh made up of h and v in Occam2D
// mesh file format. Every element is marked as free with a '?'.
func WriteMesh(w io.Writer, title string, h *occam2d.HorizontalMesh, v *occam2d.VerticalMesh) error {
	nx, nz := h.NumNodes(), v.NumNodes()
	o := newWriter(w)
	o.printf("%s\n", title)
	o.printf("%d %d %d %d %d %d\n", 0, nx, nz, 0, 0, 2)
	for _, s := range h.Spacings {
		o.printf("%.1f ", s)
	}
	o.printf("\n")
	for _, s := range v.Spacings {
		o.printf("%.1f ", s)
	}
	o.printf("\n")
	o.printf("0\n")
	row := strings.Repeat("?", nx-1)
	for j := 0; j < 4*(nz-1); j++ {
		o.printf("%s\n", row)
	}
	return o.flush("mesh")
}

// ModelHeader holds the descriptive fields of an Occam2D model file.
type ModelHeader struct {
	Name          string
	Description   string
	MeshFile      string
	StaticsFile   string
	PrejudiceFile string
}

// WriteModel writes the regularization grid r, which must have been
// created from h, in Occam2D model file format.
func WriteModel(w io.Writer, hdr ModelHeader, h *occam2d.HorizontalMesh, r *occam2d.Regularization) error {
	o := newWriter(w)
	o.printf("Format:           %s\n", ModelFormat)
	o.printf("Model Name:       %s\n", hdr.Name)
	o.printf("Description:      %s\n", hdr.Description)
	o.printf("Mesh File:        %s\n", hdr.MeshFile)
	o.printf("Mesh Type:        %s\n", MeshType)
	o.printf("Statics File:     %s\n", hdr.StaticsFile)
	o.printf("Prejudice File:   %s\n", hdr.PrejudiceFile)
	o.printf("Binding Offset:   %.1f\n", h.BindingOffset)
	o.printf("Num Layers:       %d\n", len(r.Layers))
	for _, l := range r.Layers {
		o.printf("%d %d\n", l.Rows, l.NumBlocks())
		for _, b := range l.Blocks {
			o.printf("%d ", b)
		}
		o.printf("\n")
	}
	o.printf("Number Exceptions: 0\n")
	return o.flush("model")
}

// Startup holds the contents of an Occam2D startup file.
type Startup struct {
	Format         string
	Description    string
	ModelFile      string
	DataFile       string
	DateTime       time.Time
	MaxIterations  int
	TargetRMS      float64
	RoughnessType  int
	DebugLevel     int
	Iteration      int
	LagrangeStart  float64 // starting Lagrange multiplier (PMU)
	RoughnessStart float64 // roughness of the starting model (Rlast)
	MisfitStart    float64 // misfit of the starting model (Tlast)
	ReachedMisfit  int     // whether the target misfit has been reached (IffTol)

	// NumParameters is the number of model parameters, which is the total
	// number of regularization blocks.
	NumParameters int

	// HalfspaceResistivity [Ω m] is the resistivity of the starting
	// model. Every parameter starts at its base-10 logarithm.
	HalfspaceResistivity float64
}

// DefaultStartup returns the startup settings for the first iteration of
// a new inversion.
func DefaultStartup() *Startup {
	return &Startup{
		Format:               StartupFormat,
		Description:          "occam2d generated setup",
		MaxIterations:        30,
		TargetRMS:            1.5,
		RoughnessType:        1,
		DebugLevel:           1,
		Iteration:            0,
		LagrangeStart:        5,
		RoughnessStart:       1e7,
		MisfitStart:          100,
		ReachedMisfit:        0,
		HalfspaceResistivity: 100,
	}
}

// WriteStartup writes s in Occam2D startup file format.
func WriteStartup(w io.Writer, s *Startup) error {
	if !(s.HalfspaceResistivity > 0) {
		return fmt.Errorf("occamfile: halfspace resistivity %g must be >0", s.HalfspaceResistivity)
	}
	if s.NumParameters < 1 {
		return fmt.Errorf("occamfile: startup file needs at least one parameter, not %d", s.NumParameters)
	}
	o := newWriter(w)
	o.printf("Format:           %s\n", s.Format)
	o.printf("Description:      %s\n", s.Description)
	o.printf("Model File:       %s\n", s.ModelFile)
	o.printf("Data File:        %s\n", s.DataFile)
	o.printf("Date/Time:        %s\n", s.DateTime.Format("2006/01/02 15:04:05"))
	o.printf("Max Iter:         %d\n", s.MaxIterations)
	o.printf("Req Tol:          %g\n", s.TargetRMS)
	o.printf("IRUF:             %d\n", s.RoughnessType)
	o.printf("Debug Level:      %d\n", s.DebugLevel)
	o.printf("Iteration:        %d\n", s.Iteration)
	o.printf("PMU:              %g\n", s.LagrangeStart)
	o.printf("Rlast:            %g\n", s.RoughnessStart)
	o.printf("Tlast:            %g\n", s.MisfitStart)
	o.printf("IffTol:           %d\n", s.ReachedMisfit)
	o.printf("No. Parms:        %d\n", s.NumParameters)
	v := math.Log10(s.HalfspaceResistivity)
	for i := 0; i < s.NumParameters; i++ {
		o.printf("%.6g  ", v)
	}
	o.printf("\n")
	return o.flush("startup")
}
