/*
 * crd.go, part of elview.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package amberold

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	chem "github.com/rmera/elview"
	v3 "github.com/rmera/elview/v3"
)

//Width of each number in the file (Fortran F8.3).
const fieldWidth = 8

//CrdObj reads old-style, ASCII, Amber trajectories (mdcrd). The file has a title line,
//and then, for each frame, the 3N coordinates, 10 per line, each frame starting on a new
//line. If the trajectory is periodic, each frame is followed by a line with the three box lengths.
//CrdObj implements chem.Traj.
type CrdObj struct {
	natoms   int
	readable bool
	filename string
	ioread   *os.File
	crd      *bufio.Reader
	box      bool
	values   []float64
}

//New opens the Amber trajectory filename, with ats atoms per frame. box tells whether
//each frame is followed by a box line.
func New(filename string, ats int, box bool) (*CrdObj, error) {
	var err error
	traj := new(CrdObj)
	traj.ioread, err = os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"os.Open", "New"}, true}
	}
	traj.filename = filename
	traj.crd = bufio.NewReader(traj.ioread)
	//The first line is just a title
	if _, err = traj.crd.ReadString('\n'); err != nil {
		traj.ioread.Close()
		return nil, Error{"Can't read the title line: " + err.Error(), filename, []string{"New"}, true}
	}
	traj.natoms = ats
	traj.box = box
	traj.values = make([]float64, 0, 10)
	traj.readable = true
	return traj, nil
}

//Readable returns true if the object is ready to be read from.
func (C *CrdObj) Readable() bool {
	return C.readable
}

//Len returns the number of atoms per frame.
func (C *CrdObj) Len() int {
	return C.natoms
}

//Close closes the file. The object can't be read after this.
func (C *CrdObj) Close() {
	if !C.readable {
		return
	}
	C.ioread.Close()
	C.readable = false
}

//parseLine reads the fixed-width numbers in line. Numbers can touch each other
//(i.e. "100.125-100.125"), so splitting by whitespace is not enough.
func parseLine(line string, dst []float64) ([]float64, error) {
	line = strings.TrimRight(line, "\r\n")
	for i := 0; i < len(line); i += fieldWidth {
		end := i + fieldWidth
		if end > len(line) {
			end = len(line)
		}
		f := strings.TrimSpace(line[i:end])
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

//Next reads the next frame into keep, if not nil. If the trajectory has box information,
//and box is given, the box lengths are put in its diagonal, as a 3x3 matrix.
//At the end of the trajectory Next returns a chem.LastFrameError.
func (C *CrdObj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !C.readable {
		return Error{TrajUnIni, C.filename, []string{"Next"}, true}
	}
	ncoords := C.natoms * 3
	read := 0
	if ncoords == 0 && !C.box {
		//Frames without atoms leave nothing in the file to read.
		C.Close()
		return newlastFrameError(C.filename, "Next")
	}
	for read < ncoords {
		line, err := C.crd.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF && read == 0 {
				C.Close()
				return newlastFrameError(C.filename, "Next")
			}
			return Error{fmt.Sprintf("%s: frame ended after %d of %d coordinates", ReadError, read, ncoords), C.filename, []string{"Next"}, true}
		}
		if read == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		C.values, err = parseLine(line, C.values[:0])
		if err != nil {
			return Error{"Unable to read coordinates: " + err.Error(), C.filename, []string{"strconv.ParseFloat", "Next"}, true}
		}
		if read+len(C.values) > ncoords {
			return Error{WrongFormat + ": more coordinates than atoms in frame", C.filename, []string{"Next"}, true}
		}
		if keep != nil {
			for i, v := range C.values {
				n := read + i
				keep.Set(n/3, n%3, v)
			}
		}
		read += len(C.values)
	}
	if C.box {
		return C.nextBox(box...)
	}
	return nil
}

func (C *CrdObj) nextBox(box ...[]float64) error {
	line, err := C.crd.ReadString('\n')
	if err == io.EOF && line == "" && C.natoms == 0 {
		C.Close()
		return newlastFrameError(C.filename, "Next")
	}
	if err != nil && (err != io.EOF || line == "") {
		return Error{"Can't read the box: " + err.Error(), C.filename, []string{"nextBox"}, true}
	}
	C.values, err = parseLine(line, C.values[:0])
	if err != nil || len(C.values) < 3 {
		return Error{WrongFormat + ": ill formed box line", C.filename, []string{"nextBox"}, true}
	}
	if len(box) == 0 || len(box[0]) < 9 {
		return nil
	}
	b := box[0]
	for i := range b[:9] {
		b[i] = 0
	}
	b[0], b[4], b[8] = C.values[0], C.values[1], C.values[2]
	return nil
}

//ReadAll reads all the frames of the Amber trajectory name, with the atoms in top.
//If box is true, the box of each frame becomes its cell.
func ReadAll(name string, top *chem.Topology, box bool) (*chem.Trajectory, error) {
	if top == nil {
		return nil, Error{"Amber trajectories need a topology", name, []string{"ReadAll"}, true}
	}
	r, err := New(name, top.Len(), box)
	if err != nil {
		return nil, errDecorate(err, "ReadAll")
	}
	defer r.Close()
	traj := chem.NewTrajectory()
	for i := 0; ; i++ {
		coords := v3.Zeros(top.Len())
		b := make([]float64, 9)
		if err := r.Next(coords, b); err != nil {
			if _, ok := err.(chem.LastFrameError); ok {
				break
			}
			return nil, errDecorate(err, "ReadAll")
		}
		cell, _ := v3.NewMatrix(b)
		s, err := chem.NewStructure(top, coords, cell)
		if err != nil {
			return nil, Error{fmt.Sprintf("frame %d: %s", i, err.Error()), name, []string{"ReadAll"}, true}
		}
		traj.AddFrame(s)
	}
	return traj, nil
}

//Errors

//errDecorate is a helper function that asserts that the error
//implements chem.Error and decorates the error with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(chem.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for Crd trajectory errors. It fullfills chem.Error and chem.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("Old Amber trajectory file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "Old Amber") associated to the error
func (err Error) Format() string { return "Old Amber" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIni    = "Traj object uninitialized to read"
	ReadError    = "Error reading frame"
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the trajectory file or frame"
)

//lastFrameError implements chem.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "Old Amber" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
