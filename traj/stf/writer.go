/*
 * writer.go, part of elview.
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
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/elview"
	v3 "github.com/rmera/elview/v3"
	"go.uber.org/zap"
)

const (
	lzwLitwidth int = 8

	//DefaultPrec is the precision used when none is given in the header.
	DefaultPrec = 2
)

//Writer writes STF trajectories.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
	buf       []byte
}

//NewWriter creates the file name and writes the header, with the given number of atoms
//per frame and the key=value pairs in header. The "prec" key, if present, sets the
//precision. The compression level is only used for gzip and deflate files.
func NewWriter(name string, natoms int, header map[string]string, compressionLevel ...int) (*Writer, error) {
	level := flate.BestCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := &Writer{filename: name, natoms: natoms, prec: DefaultPrec}
	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		h[k] = v
	}
	if p, ok := h["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			zap.L().Named("stf").Warn("Invalid precision, will use the default", zap.String("file", name), zap.String("prec", p))
		}
	}
	h["prec"] = strconv.Itoa(S.prec)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"os.Create", "NewWriter"}, true}
	}
	S.h, err = compressor(name, level)(S.f)
	if err != nil {
		S.f.Close()
		return nil, Error{"Can't create the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var headerstr strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&headerstr, "%s=%s\n", k, h[k])
	}
	fmt.Fprintf(&headerstr, "** %d\n", natoms)
	if _, err := io.WriteString(S.h, headerstr.String()); err != nil {
		S.h.Close()
		S.f.Close()
		return nil, Error{"Can't write the header: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.writeable = true
	return S, nil
}

func compressor(name string, level int) func(io.Writer) (io.WriteCloser, error) {
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		return func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		return func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	case 'r':
		return func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	}
	return func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
}

//Len returns the number of atoms per frame.
func (S *Writer) Len() int {
	return S.natoms
}

//WNext writes coord as the next frame, with the box vectors in box,
//if given (9 numbers, one vector after the other).
func (S *Writer) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	if v := coord.NVecs(); v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	S.buf = S.buf[:0]
	for i := 0; i < S.natoms; i++ {
		S.buf = coordsEncode(S.buf, coord.RawRowView(i), S.prec)
	}
	S.buf = append(S.buf, '*')
	if len(box) > 0 && len(box[0]) >= 9 {
		for _, v := range box[0][:9] {
			S.buf = append(S.buf, ' ')
			S.buf = strconv.AppendFloat(S.buf, v, 'g', -1, 64)
		}
	}
	S.buf = append(S.buf, '\n')
	if _, err := S.h.Write(S.buf); err != nil {
		return Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close flushes the compressor and closes the file. The writer can not be used after this call.
func (S *Writer) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.h.Close()
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

//coordsEncode appends the "x y z\n" line for the coordinates f to dst.
func coordsEncode(dst []byte, f []float64, prec int) []byte {
	p := math.Pow(10.0, float64(prec))
	for i, v := range f[:3] {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendInt(dst, int64(math.RoundToEven(v*p)), 10)
	}
	return append(dst, '\n')
}

//topologyJSON is the representation of each atom in the "topology" header key.
type topologyJSON struct {
	Symbol string
	Name   string `json:",omitempty"`
	ID     int    `json:",omitempty"`
}

//TopologyHeader returns the value of the "topology" header key for top.
func TopologyHeader(top chem.Atomer) (string, error) {
	ats := make([]topologyJSON, top.Len())
	for i := range ats {
		a := top.Atom(i)
		ats[i] = topologyJSON{Symbol: a.Symbol, Name: a.Name, ID: a.ID}
	}
	b, err := json.Marshal(ats)
	if err != nil {
		return "", Error{"Can't encode the topology: " + err.Error(), "", []string{"TopologyHeader"}, true}
	}
	return string(b), nil
}

//WriteAll writes every frame of traj to the file name, using each frame's cell as
//the box, and including the topology of the first frame in the header.
func WriteAll(name string, traj chem.Framer, prec int) error {
	if traj.NFrames() == 0 {
		return Error{"No frames to write", name, []string{"WriteAll"}, true}
	}
	first := traj.Frame(0)
	top, err := TopologyHeader(first)
	if err != nil {
		return errDecorate(err, "WriteAll")
	}
	header := map[string]string{"topology": top}
	if prec > 0 {
		header["prec"] = strconv.Itoa(prec)
	}
	w, err := NewWriter(name, first.Len(), header)
	if err != nil {
		return errDecorate(err, "WriteAll")
	}
	box := make([]float64, 9)
	for i := 0; i < traj.NFrames(); i++ {
		s := traj.Frame(i)
		if err := s.Corrupted(); err != nil {
			w.Close()
			return Error{fmt.Sprintf("frame %d: %s", i, err.Error()), name, []string{"WriteAll"}, true}
		}
		for j := 0; j < 3; j++ {
			copy(box[j*3:j*3+3], s.Cell.RawRowView(j))
		}
		if err := w.WNext(s.Coords, box); err != nil {
			w.Close()
			return errDecorate(err, "WriteAll")
		}
	}
	return errDecorate(w.Close(), "WriteAll")
}
