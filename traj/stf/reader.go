/*
 * reader.go, part of elview.
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

package stf

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/elview"
	v3 "github.com/rmera/elview/v3"
	"go.uber.org/zap"
)

//Reader reads STF trajectories. It implements chem.Traj.
type Reader struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
	log      *zap.Logger
}

//zstd's Decoder doesn't implement io.ReadCloser, as its Close returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (s zstdCloser) Close() error {
	s.Decoder.Close()
	return nil
}

func decompressor(name string) func(io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		return func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		return func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case 'r':
		return func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	}
	return func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return zstdCloser{r}, nil
	}
}

//New opens a STF trajectory for reading, and returns a pointer
//to the handle, a map with the header and error or nil.
func New(name string) (*Reader, map[string]string, error) {
	S := &Reader{filename: name, natoms: -1, prec: DefaultPrec, log: zap.L().Named("stf")}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{err.Error(), name, []string{"os.Open", "New"}, true}
	}
	S.dec, err = decompressor(name)(bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, Error{"Can't read header: " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.dec)
	m, err := S.readHeader()
	if err != nil {
		S.dec.Close()
		S.f.Close()
		return nil, nil, errDecorate(err, "New")
	}
	S.readable = true
	return S, m, nil
}

func (S *Reader) readHeader() (map[string]string, error) {
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return nil, Error{"Can't read header: " + err.Error(), S.filename, []string{"readHeader"}, true}
		}
		str = strings.TrimSpace(str)
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				return nil, Error{fmt.Sprintf("Can't read atom number from '%s'", str), S.filename, []string{"readHeader"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil || S.natoms < 0 {
				return nil, Error{fmt.Sprintf("Can't read atom number from '%s'", nat[1]), S.filename, []string{"readHeader"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, Error{fmt.Sprintf("Malformed header line '%s'", str), S.filename, []string{"readHeader"}, true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			S.log.Warn("Invalid precision, will assume the default", zap.String("file", S.filename), zap.String("prec", p))
		}
	}
	return m, nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *Reader) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *Reader) Len() int {
	return S.natoms
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) < 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: Too few fields: %s", str)
	}
	if len(s) > 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: Too many fields: %s", str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("Can't parse coordinate %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//Next puts in the given matrix (c) the coordinates for the next frame of the trajectory
//and, if given, puts the box vectors in box. If the frame has no box information, box is
//set to zero. If c is nil, the frame is read and checked, but discarded.
//At the end of the trajectory, Next returns a chem.LastFrameError.
func (S *Reader) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		str, err := S.h.ReadString('\n')
		if err != nil && (err != io.EOF || str == "") {
			if err == io.EOF && i == 0 {
				S.Close()
				return newlastFrameError(S.filename, "Next")
			}
			return Error{fmt.Sprintf("Frame ended after %d atoms: %s", i, err.Error()), S.filename, []string{"Next"}, true}
		}
		if err = coordsDecode(str, &temp, S.prec); err != nil {
			return Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		if c == nil {
			continue
		}
		c.Set(i, 0, temp[0])
		c.Set(i, 1, temp[1])
		c.Set(i, 2, temp[2])
	}
	s, err := S.h.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		if err == io.EOF && S.natoms == 0 {
			S.Close()
			return newlastFrameError(S.filename, "Next")
		}
		return Error{"Can't read the frame termination mark: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if s[0] != '*' {
		return Error{WrongFormat + ": wrong number of atoms in frame", S.filename, []string{"Next"}, true}
	}
	if len(box) == 0 || len(box[0]) < 9 {
		return nil
	}
	b := box[0]
	fields := strings.Fields(s)
	if len(fields) != 10 {
		S.log.Debug("Frame without (correct) box information", zap.String("file", S.filename))
		for i := range b {
			b[i] = 0
		}
		return nil
	}
	for j, v := range fields[1:] {
		b[j], err = strconv.ParseFloat(v, 64)
		if err != nil {
			S.log.Warn("Failed to read box in a frame", zap.String("file", S.filename), zap.Error(err))
			for i := range b {
				b[i] = 0
			}
			break
		}
	}
	return nil
}

//Close closes the object, and marks it as unreadable
func (S *Reader) Close() {
	if !S.readable {
		return
	}
	S.dec.Close()
	S.f.Close()
	S.readable = false
}

//ReadAll reads every frame of the STF file name into a trajectory where all frames share
//a topology, and each frame's box is used as its cell. If top is nil, the topology is taken
//from the header of the file.
func ReadAll(name string, top *chem.Topology) (*chem.Trajectory, error) {
	r, m, err := New(name)
	if err != nil {
		return nil, errDecorate(err, "ReadAll")
	}
	defer r.Close()
	if top == nil {
		top, err = topologyFromHeader(m)
		if err != nil {
			return nil, Error{err.Error(), name, []string{"ReadAll"}, true}
		}
	}
	if top.Len() != r.Len() {
		return nil, Error{fmt.Sprintf("The topology has %d atoms, the trajectory %d", top.Len(), r.Len()), name, []string{"ReadAll"}, true}
	}
	traj := chem.NewTrajectory()
	for i := 0; ; i++ {
		coords := v3.Zeros(r.Len())
		box := make([]float64, 9)
		err := r.Next(coords, box)
		if err != nil {
			if _, ok := err.(chem.LastFrameError); ok {
				break
			}
			return nil, errDecorate(err, "ReadAll")
		}
		cell, _ := v3.NewMatrix(box)
		s, err := chem.NewStructure(top, coords, cell)
		if err != nil {
			return nil, Error{fmt.Sprintf("frame %d: %s", i, err.Error()), name, []string{"ReadAll"}, true}
		}
		traj.AddFrame(s)
	}
	return traj, nil
}

func topologyFromHeader(m map[string]string) (*chem.Topology, error) {
	t, ok := m["topology"]
	if !ok {
		return nil, fmt.Errorf("No topology given and none found in the file")
	}
	var ats []topologyJSON
	if err := json.Unmarshal([]byte(t), &ats); err != nil {
		return nil, fmt.Errorf("Can't read the topology in the header: %s", err.Error())
	}
	atoms := make([]*chem.Atom, len(ats))
	for i, v := range ats {
		atoms[i] = &chem.Atom{Symbol: v.Symbol, Name: v.Name, ID: v.ID}
		atoms[i].Mass, _ = chem.Mass(v.Symbol)
	}
	return chem.NewTopology(atoms, 0, 0), nil
}
