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
	"bufio"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os/exec"
	"path/filepath"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/occam2d"
)

// RunOccam runs the Occam2D program executable on startupFile, in the
// directory that holds startupFile. Each line the program prints is
// written to log. It returns an error if the program cannot be started
// or exits with a non-zero status.
func RunOccam(ctx context.Context, executable, startupFile string, log logrus.FieldLogger) error {
	cmd := exec.CommandContext(ctx, executable, filepath.Base(startupFile))
	cmd.Dir = filepath.Dir(startupFile)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			log.WithField("program", executable).Info(scanner.Text())
		}
		io.Copy(ioutil.Discard, pr) // Keep the program from blocking on a long line.
	}()

	log.WithFields(logrus.Fields{
		"program": executable,
		"startup": startupFile,
	}).Info("starting inversion")
	err := cmd.Run()
	pw.Close()
	<-done
	if err != nil {
		return fmt.Errorf("occam2d: running %s: %v", executable, err)
	}
	log.WithField("program", executable).Info("inversion finished")
	return nil
}

// Describe writes a summary of the setup saved in r to w.
func Describe(w io.Writer, r io.Reader) error {
	s := &occam2d.Setup{InitFuncs: []occam2d.SetupManipulator{occam2d.Load(r)}}
	if err := s.Init(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Mesh configuration: %# v\n", pretty.Formatter(s.Config))
	fmt.Fprintf(w, "Stations: %d (%d dummy)\n", len(s.Stations), s.Profile.Dummies())
	fmt.Fprintf(w, "Horizontal nodes: %d\n", s.Horizontal.NumNodes())
	fmt.Fprintf(w, "Vertical nodes: %d\n", s.Vertical.NumNodes())
	fmt.Fprintf(w, "Binding offset: %.1f m\n", s.Horizontal.BindingOffset)
	fmt.Fprintf(w, "Mesh width: %.1f m\n", s.Horizontal.Width())
	fmt.Fprintf(w, "Mesh depth: %.1f m\n", s.Vertical.Depth())
	fmt.Fprintf(w, "Parameters: %d\n", s.Regularization.NumParameters())
	fmt.Fprintf(w, "%5s %5s %12s %7s\n", "layer", "rows", "thickness", "blocks")
	for k, l := range s.Regularization.Layers {
		fmt.Fprintf(w, "%5d %5d %12.1f %7d\n", k, l.Rows, l.Thickness, l.NumBlocks())
	}
	return nil
}
