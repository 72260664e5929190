/*
 * xyz.go, part of elview.
 *
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package chem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	v3 "github.com/rmera/elview/v3"
)

//The lattice in an extended XYZ comment line: Lattice="ax ay az bx by bz cx cy cz"
var latticeRe = regexp.MustCompile(`Lattice="([^"]*)"`)

//XYZFileRead reads a (possibly multi-frame, possibly extended) XYZ file, and returns
//its frames as a Trajectory. A single-frame file gives a one-frame Trajectory.
func XYZFileRead(xyzname string) (*Trajectory, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{err.Error(), []string{"os.Open", "XYZFileRead"}}
	}
	defer xyzfile.Close()
	traj, err := XYZRead(xyzfile)
	if err != nil {
		err = CError{fmt.Sprintf("%s: %s", xyzname, err.Error()), []string{"XYZFileRead"}}
	}
	return traj, err
}

//XYZRead reads XYZ frames from r until EOF. Every frame must have the same number of
//atoms, with the same symbols, in the same order. If the comment line of a frame carries
//an extended-XYZ lattice, it is used as that frame's cell, otherwise the cell is zero.
func XYZRead(r io.Reader) (*Trajectory, error) {
	xyz := bufio.NewReader(r)
	var top *Topology
	traj := NewTrajectory()
	lineno := 0
	for frame := 0; ; frame++ {
		natoms, comment, err := xyzReadHeader(xyz, &lineno)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, CError{fmt.Sprintf("frame %d, line %d: %s", frame, lineno, err.Error()), []string{"XYZRead"}}
		}
		cell, err := xyzLattice(comment)
		if err != nil {
			return nil, CError{fmt.Sprintf("frame %d, line %d: %s", frame, lineno, err.Error()), []string{"XYZRead"}}
		}
		if top != nil && natoms != top.Len() {
			return nil, CError{fmt.Sprintf("frame %d has %d atoms, the first frame has %d", frame, natoms, top.Len()), []string{"XYZRead"}}
		}
		symbols, coords, err := xyzReadAtoms(xyz, natoms, &lineno)
		if err != nil {
			return nil, CError{fmt.Sprintf("frame %d, line %d: %s", frame, lineno, err.Error()), []string{"XYZRead"}}
		}
		if top == nil {
			ats := make([]*Atom, natoms)
			for i, s := range symbols {
				ats[i] = &Atom{Symbol: s, ID: i + 1}
				ats[i].Mass, _ = Mass(s)
			}
			top = NewTopology(ats, 0, 0)
		} else {
			for i, s := range symbols {
				if top.Atom(i).Symbol != s {
					return nil, CError{fmt.Sprintf("frame %d: atom %d is %s, but it was %s in the first frame", frame, i, s, top.Atom(i).Symbol), []string{"XYZRead"}}
				}
			}
		}
		s, err := NewStructure(top, coords, cell)
		if err != nil {
			return nil, errDecorate(err, "XYZRead")
		}
		traj.AddFrame(s)
	}
	if traj.NFrames() == 0 {
		return nil, CError{"No frames found", []string{"XYZRead"}}
	}
	return traj, nil
}

//xyzReadHeader reads the atom-number and comment lines of one frame.
//Blank lines before the atom number are skipped, so trailing newlines
//at the end of a file are not an error. Returns io.EOF if there are no more frames.
func xyzReadHeader(xyz *bufio.Reader, lineno *int) (int, string, error) {
	var line string
	var err error
	for {
		line, err = xyz.ReadString('\n')
		*lineno++
		if strings.TrimSpace(line) != "" {
			break
		}
		if err != nil {
			return 0, "", io.EOF
		}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms < 0 {
		return 0, "", fmt.Errorf("Ill formatted XYZ atom number: %q", strings.TrimSpace(line))
	}
	comment, err := xyz.ReadString('\n')
	*lineno++
	if err != nil && err != io.EOF {
		return 0, "", err
	}
	if err == io.EOF && comment == "" && natoms > 0 {
		return 0, "", fmt.Errorf("Unexpected end of file before the comment line")
	}
	return natoms, comment, nil
}

//xyzReadAtoms reads natoms "Symbol x y z" lines. Additional columns are ignored.
func xyzReadAtoms(xyz *bufio.Reader, natoms int, lineno *int) ([]string, *v3.Matrix, error) {
	symbols := make([]string, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err := xyz.ReadString('\n')
		*lineno++
		if err != nil && (err != io.EOF || line == "") {
			return nil, nil, fmt.Errorf("Expected %d atoms, found %d", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, fmt.Errorf("Atom line ill formed: %q", strings.TrimSpace(line))
		}
		symbols[i] = fields[0]
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	return symbols, mcoords, err
}

//xyzLattice returns the cell in the extended XYZ comment line, or nil
//if there is none.
func xyzLattice(comment string) (*v3.Matrix, error) {
	m := latticeRe.FindStringSubmatch(comment)
	if m == nil {
		return nil, nil
	}
	fields := strings.Fields(m[1])
	if len(fields) != 9 {
		return nil, fmt.Errorf("The lattice needs 9 numbers, got %d", len(fields))
	}
	l := make([]float64, 9)
	var err error
	for i, v := range fields {
		l[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
	}
	return v3.NewMatrix(l)
}

//XYZFileWrite writes all the frames of traj in an extended XYZ file with name xyzname which will
//be created for that. If the file exist it will be overwritten.
func XYZFileWrite(xyzname string, traj Framer) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return CError{err.Error(), []string{"os.Create", "XYZFileWrite"}}
	}
	defer out.Close()
	if err := XYZWrite(out, traj); err != nil {
		return errDecorate(err, "XYZFileWrite")
	}
	return nil
}

//XYZWrite writes all the frames of traj to w, in extended XYZ format.
func XYZWrite(w io.Writer, traj Framer) error {
	out := bufio.NewWriter(w)
	for i := 0; i < traj.NFrames(); i++ {
		if err := xyzWriteFrame(out, traj.Frame(i)); err != nil {
			return CError{fmt.Sprintf("frame %d: %s", i, err.Error()), []string{"XYZWrite"}}
		}
	}
	if err := out.Flush(); err != nil {
		return CError{err.Error(), []string{"XYZWrite"}}
	}
	return nil
}

func xyzWriteFrame(out io.Writer, s *Structure) error {
	if err := s.Corrupted(); err != nil {
		return err
	}
	c := s.Cell.RawMatrix().Data
	if s.Cell.RawMatrix().Stride != 3 {
		c = make([]float64, 0, 9)
		for i := 0; i < 3; i++ {
			c = append(c, s.Cell.RawRowView(i)...)
		}
	}
	if _, err := fmt.Fprintf(out, "%d\nLattice=\"%g %g %g %g %g %g %g %g %g\" Properties=species:S:1:pos:R:3\n", s.Len(),
		c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7], c[8]); err != nil {
		return err
	}
	for i := 0; i < s.Len(); i++ {
		p := s.Position(i)
		if _, err := fmt.Fprintf(out, "%-2s %14.8f %14.8f %14.8f\n", s.Atom(i).Symbol, p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return nil
}
