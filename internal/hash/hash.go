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

// Package hash creates short, stable identifiers for mesh inputs so that
// generated files can be traced back to the configuration that made them.
package hash

import (
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

var printer = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Key returns a 64-bit hexadecimal key for the specified objects.
// Objects with the same contents always have the same key, regardless
// of where they are stored in memory.
func Key(objects ...interface{}) string {
	h := fnv.New64a()
	for _, o := range objects {
		printer.Fprintf(h, "%#v\n", o)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
