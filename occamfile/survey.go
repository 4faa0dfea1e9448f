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

// Package occamfile reads survey descriptions and writes the input files
// of the Occam2D inversion program.
package occamfile

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DataFormat is the format identifier written to Occam2D data files.
const DataFormat = "OCCAM2MTDATA_1.0"

// Station is a measurement site on the survey profile.
type Station struct {
	Name   string
	Offset float64 // distance along the profile [m]
}

// Datum is one row of an Occam2D data block.
type Datum struct {
	Site  int // 1-based station index
	Freq  int // 1-based frequency index
	Type  int // Occam2D data type code
	Value float64
	Error float64
}

// Survey holds the stations, frequencies and data of one profile.
type Survey struct {
	Title       string
	Format      string
	Stations    []Station
	Frequencies []float64 // Hz
	Data        []Datum
}

// Offsets returns the profile offsets of the stations in s.
func (s *Survey) Offsets() []float64 {
	o := make([]float64, len(s.Stations))
	for i, st := range s.Stations {
		o[i] = st.Offset
	}
	return o
}

// check sorts the stations by offset and makes sure the data rows refer
// to existing stations and frequencies. Data site indices refer to the
// order the stations were given in and are renumbered to match.
func (s *Survey) check() error {
	if s.Format == "" {
		s.Format = DataFormat
	}
	if len(s.Stations) == 0 {
		return fmt.Errorf("occamfile: survey has no stations")
	}
	order := make([]int, len(s.Stations))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Stations[order[i]].Offset < s.Stations[order[j]].Offset
	})
	newIndex := make([]int, len(order))
	sorted := make([]Station, len(order))
	for i, o := range order {
		sorted[i] = s.Stations[o]
		newIndex[o] = i
	}
	s.Stations = sorted
	for i, d := range s.Data {
		if d.Site < 1 || d.Site > len(s.Stations) {
			return fmt.Errorf("occamfile: data row %d refers to site %d but there are %d stations",
				i+1, d.Site, len(s.Stations))
		}
		if d.Freq < 1 || d.Freq > len(s.Frequencies) {
			return fmt.Errorf("occamfile: data row %d refers to frequency %d but there are %d frequencies",
				i+1, d.Freq, len(s.Frequencies))
		}
		s.Data[i].Site = newIndex[d.Site-1] + 1
	}
	return nil
}

// ReadSurvey reads a TOML survey description from r. An example:
//
//	Title = "line 1"
//	Frequencies = [100.0, 10.0, 1.0]
//
//	[[Stations]]
//	Name = "S01"
//	Offset = 0.0
//
//	[[Data]]
//	Site = 1
//	Freq = 1
//	Type = 1
//	Value = 2.1
//	Error = 0.1
//
// The stations of the returned survey are in order of increasing offset.
func ReadSurvey(r io.Reader) (*Survey, error) {
	s := new(Survey)
	if _, err := toml.DecodeReader(r, s); err != nil {
		return nil, fmt.Errorf("occamfile: reading survey: %v", err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadData reads an Occam2D data file as written by WriteData.
func ReadData(r io.Reader) (*Survey, error) {
	sc := bufio.NewScanner(r)
	var lineNo int
	next := func() (string, error) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return line, nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	// field reads a "KEY: value" line.
	field := func(key string) (string, error) {
		line, err := next()
		if err != nil {
			return "", fmt.Errorf("occamfile: reading %s: %v", key, err)
		}
		i := strings.Index(line, ":")
		if i < 0 || !strings.EqualFold(strings.TrimSpace(line[:i]), key) {
			return "", fmt.Errorf("occamfile: line %d: expected %s, found %q", lineNo, key, line)
		}
		return strings.TrimSpace(line[i+1:]), nil
	}
	count := func(key string) (int, error) {
		v, err := field(key)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("occamfile: line %d: %s: %v", lineNo, key, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("occamfile: line %d: %s is %d but should be >=0", lineNo, key, n)
		}
		return n, nil
	}

	s := new(Survey)
	var err error
	if s.Format, err = field("FORMAT"); err != nil {
		return nil, err
	}
	if s.Title, err = field("TITLE"); err != nil {
		return nil, err
	}
	nSites, err := count("SITES")
	if err != nil {
		return nil, err
	}
	for i := 0; i < nSites; i++ {
		name, err := next()
		if err != nil {
			return nil, fmt.Errorf("occamfile: reading site names: %v", err)
		}
		s.Stations = append(s.Stations, Station{Name: name})
	}
	if _, err = field("OFFSETS (M)"); err != nil {
		return nil, err
	}
	for i := range s.Stations {
		line, err := next()
		if err != nil {
			return nil, fmt.Errorf("occamfile: reading offsets: %v", err)
		}
		if s.Stations[i].Offset, err = strconv.ParseFloat(line, 64); err != nil {
			return nil, fmt.Errorf("occamfile: line %d: %v", lineNo, err)
		}
	}
	nFreq, err := count("FREQUENCIES")
	if err != nil {
		return nil, err
	}
	for i := 0; i < nFreq; i++ {
		line, err := next()
		if err != nil {
			return nil, fmt.Errorf("occamfile: reading frequencies: %v", err)
		}
		f, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("occamfile: line %d: %v", lineNo, err)
		}
		s.Frequencies = append(s.Frequencies, f)
	}
	nData, err := count("DATA BLOCKS")
	if err != nil {
		return nil, err
	}
	if nData > 0 {
		if _, err := next(); err != nil { // column header
			return nil, fmt.Errorf("occamfile: reading data header: %v", err)
		}
	}
	for i := 0; i < nData; i++ {
		line, err := next()
		if err != nil {
			return nil, fmt.Errorf("occamfile: reading data: %v", err)
		}
		f := strings.Fields(line)
		if len(f) != 5 {
			return nil, fmt.Errorf("occamfile: line %d: data row has %d columns, want 5", lineNo, len(f))
		}
		var idx [3]int
		for j := range idx {
			if idx[j], err = strconv.Atoi(f[j]); err != nil {
				return nil, fmt.Errorf("occamfile: line %d: column %d should be an integer: %v", lineNo, j+1, err)
			}
		}
		var v [2]float64
		for j := range v {
			if v[j], err = strconv.ParseFloat(f[j+3], 64); err != nil {
				return nil, fmt.Errorf("occamfile: line %d: %v", lineNo, err)
			}
		}
		s.Data = append(s.Data, Datum{Site: idx[0], Freq: idx[1], Type: idx[2], Value: v[0], Error: v[1]})
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}
