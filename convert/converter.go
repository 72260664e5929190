/*
 * converter.go, part of elview.
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

package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	chem "github.com/rmera/elview"
	v3 "github.com/rmera/elview/v3"
	"go.uber.org/zap"
)

const (
	//DefaultThreshold is the number of atom-instances (frames times atoms) at and
	//above which the atoms of a trajectory go to a CSV file instead of the document.
	DefaultThreshold = 10000000

	//DefaultJSONName is the name of the file where the document is written.
	DefaultJSONName = "temp_data.json"

	//DefaultCSVName is the name of the intermediate file for large trajectories.
	DefaultCSVName = "__ElectroLens_View_Intermediate__.csv"

	//DefaultMoleculeName is the name given to the only view of the document.
	DefaultMoleculeName = "test"
)

//Converter builds an ElectroLens configuration document from a structure
//or a trajectory. Use New to obtain one.
type Converter struct {
	in        Input
	outDir    string
	jsonName  string
	csvName   string
	threshold int
	name      string
	log       *zap.Logger
}

//Option sets a parameter of a Converter.
type Option func(*Converter)

//WithOutputDir sets the directory where the JSON and CSV files are written.
//It is created if it doesn't exist. The default is the current directory.
func WithOutputDir(dir string) Option {
	return func(C *Converter) {
		if dir != "" {
			C.outDir = dir
		}
	}
}

//WithJSONName sets the name of the JSON file.
func WithJSONName(name string) Option {
	return func(C *Converter) {
		if name != "" {
			C.jsonName = name
		}
	}
}

//WithCSVName sets the name of the intermediate CSV file.
func WithCSVName(name string) Option {
	return func(C *Converter) {
		if name != "" {
			C.csvName = name
		}
	}
}

//WithThreshold sets the atom-instance count from which trajectories are
//written to CSV. Non-positive values are ignored.
func WithThreshold(n int) Option {
	return func(C *Converter) {
		if n > 0 {
			C.threshold = n
		}
	}
}

//WithMoleculeName sets the name of the view.
func WithMoleculeName(name string) Option {
	return func(C *Converter) {
		if name != "" {
			C.name = name
		}
	}
}

//WithLogger sets the logger. The default is zap's global logger.
func WithLogger(l *zap.Logger) Option {
	return func(C *Converter) {
		if l != nil {
			C.log = l
		}
	}
}

//New returns a Converter for in. The kind of in (single or framed) is
//fixed for the life of the Converter.
func New(in Input, opts ...Option) *Converter {
	C := &Converter{
		in:        in,
		outDir:    ".",
		jsonName:  DefaultJSONName,
		csvName:   DefaultCSVName,
		threshold: DefaultThreshold,
		name:      DefaultMoleculeName,
		log:       zap.L(),
	}
	for _, o := range opts {
		o(C)
	}
	C.log = C.log.Named("converter")
	return C
}

//Input returns the input of the converter.
func (C *Converter) Input() Input { return C.in }

//Threshold returns the atom-instance count from which trajectories go to CSV.
func (C *Converter) Threshold() int { return C.threshold }

//JSONPath returns the path of the JSON file written by the converter.
func (C *Converter) JSONPath() string { return filepath.Join(C.outDir, C.jsonName) }

//CSVPath returns the path of the intermediate CSV file, which is
//only written for large trajectories.
func (C *Converter) CSVPath() string { return filepath.Join(C.outDir, C.csvName) }

//Convert takes the cell of the reference structure (the first frame for trajectories),
//obtains the lattice constants and vectors from it, and builds the document with them.
func (C *Converter) Convert() (*Document, error) {
	if C.in.IsFramed() {
		C.log.Info("Converting framed data to config")
	} else {
		C.log.Info("Converting non-framed data to config")
	}
	ref, err := C.in.Reference()
	if err != nil {
		return nil, err
	}
	constants, vectors, err := Lattice(ref.Cell)
	if err != nil {
		return nil, err
	}
	return C.ToConfig(constants, vectors)
}

//ToConfig builds the document with the given lattice constants and normalized lattice vectors
//(one per row), writes it as JSON to the output directory, and returns it.
//Large trajectories have their atoms written to a CSV file, which the document references.
func (C *Converter) ToConfig(constants [3]float64, vectors *v3.Matrix) (*Document, error) {
	if vectors == nil || vectors.Dense == nil || vectors.IsEmpty() {
		return nil, ErrCell
	}
	if r, c := vectors.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("%w: got %dx%d lattice vectors", ErrCell, r, c)
	}
	view := View{
		ViewType:       ViewType3D,
		MoleculeName:   C.name,
		LatticeVectors: flattenLattice(vectors),
		Dimension:      Dimension{X: constants[0], Y: constants[1], Z: constants[2]},
	}
	setup := PlotSetup{MoleculePropertyList: []string{PropertyAtom}}
	var count int
	var err error
	if C.in.IsFramed() {
		view.MoleculeData, count, err = C.framedData()
		setup.MoleculePropertyList = append(setup.MoleculePropertyList, PropertyFrame)
		setup.FrameProperty = PropertyFrame
	} else {
		view.MoleculeData, count, err = C.singleData()
	}
	if err != nil {
		return nil, err
	}
	C.log.Info("Successfully processed", zap.Int("items", count))
	doc := &Document{Views: []View{view}, PlotSetup: setup}
	if err := C.writeJSON(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (C *Converter) singleData() (MoleculeData, int, error) {
	s := C.in.Structure()
	if s == nil {
		return MoleculeData{}, 0, fmt.Errorf("convert: nil structure")
	}
	if err := s.Corrupted(); err != nil {
		return MoleculeData{}, 0, fmt.Errorf("convert: %w", err)
	}
	C.log.Info("Received input data", zap.Int("items", s.Len()))
	return InlineData(records(s, -1, make([]Record, 0, s.Len()))), s.Len(), nil
}

//framedData decides where the atoms of the trajectory go: in the document
//if there are fewer than the threshold, to the CSV file otherwise.
func (C *Converter) framedData() (MoleculeData, int, error) {
	frames := C.in.Frames()
	if frames == nil || frames.NFrames() == 0 {
		return MoleculeData{}, 0, ErrNoFrames
	}
	nframes := frames.NFrames()
	length := nframes * frames.Frame(0).Len()
	C.log.Info("Received framed input data", zap.Int("items", length), zap.Int("frames", nframes))
	if length >= C.threshold {
		if err := os.MkdirAll(C.outDir, 0o755); err != nil {
			return MoleculeData{}, 0, fmt.Errorf("convert: creating the output directory: %w", err)
		}
		count, path, err := writeCSV(C.CSVPath(), frames)
		if err != nil {
			return MoleculeData{}, 0, err
		}
		C.log.Info("Wrote atoms to intermediate file", zap.String("file", path), zap.Int("rows", count))
		return FileReference(path), count, nil
	}
	data := make([]Record, 0, length)
	for f := 0; f < nframes; f++ {
		s := frames.Frame(f)
		if err := s.Corrupted(); err != nil {
			return MoleculeData{}, 0, fmt.Errorf("convert: frame %d: %w", f, err)
		}
		data = records(s, f, data)
	}
	return InlineData(data), len(data), nil
}

//records appends one record per atom of s to data, in order. A negative frame
//gives records without a frame field.
func records(s *chem.Structure, frame int, data []Record) []Record {
	for i := 0; i < s.Len(); i++ {
		p := s.Position(i)
		r := Record{X: p[0], Y: p[1], Z: p[2], Atom: s.Atom(i).Symbol}
		if frame >= 0 {
			r.Frame = frame
			r.Framed = true
		}
		data = append(data, r)
	}
	return data
}

//writeJSON writes doc with a 4-space indentation, overwriting any previous file.
func (C *Converter) writeJSON(doc *Document) error {
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("convert: encoding the document: %w", err)
	}
	if err := os.MkdirAll(C.outDir, 0o755); err != nil {
		return fmt.Errorf("convert: creating the output directory: %w", err)
	}
	C.log.Info("Writing config", zap.String("file", C.JSONPath()))
	if err := os.WriteFile(C.JSONPath(), b, 0o644); err != nil {
		return fmt.Errorf("convert: writing the document: %w", err)
	}
	return nil
}
