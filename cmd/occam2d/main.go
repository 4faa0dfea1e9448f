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

// Command occam2d is a command-line interface for setting up and running
// Occam2D resistivity inversions.
package main

import (
	"os"

	"github.com/spatialmodel/occam2d/occam2dutil"
)

func main() {
	if err := occam2dutil.Root.Execute(); err != nil {
		occam2dutil.Log.WithError(err).Error("occam2d failed")
		os.Exit(1)
	}
}
