/*
 * document.go, part of elview.
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

	v3 "github.com/rmera/elview/v3"
)

const (
	//ViewType3D is the only view type produced.
	ViewType3D = "3DView"

	//PropertyAtom is the per-atom property holding the element symbol.
	PropertyAtom = "atom"

	//PropertyFrame is the per-atom property holding the 0-based frame index.
	PropertyFrame = "frame"
)

//Document is the ElectroLens configuration. The field order
//is the order in which the front end expects to see them.
type Document struct {
	Views     []View    `json:"views"`
	PlotSetup PlotSetup `json:"plotSetup"`
}

//View describes one 3D view. Only one is ever produced.
type View struct {
	ViewType       string         `json:"viewType"`
	MoleculeName   string         `json:"moleculeName"`
	MoleculeData   MoleculeData   `json:"moleculeData"`
	LatticeVectors LatticeVectors `json:"systemLatticeVectors"`
	Dimension      Dimension      `json:"systemDimension"`
}

//Dimension is the extent of the system along each lattice vector.
type Dimension struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

//LatticeVectors is the normalized 3x3 lattice, flattened. Uij is
//the jth component of the ith lattice vector.
type LatticeVectors struct {
	U11 float64 `json:"u11"`
	U12 float64 `json:"u12"`
	U13 float64 `json:"u13"`
	U21 float64 `json:"u21"`
	U22 float64 `json:"u22"`
	U23 float64 `json:"u23"`
	U31 float64 `json:"u31"`
	U32 float64 `json:"u32"`
	U33 float64 `json:"u33"`
}

func flattenLattice(v *v3.Matrix) LatticeVectors {
	return LatticeVectors{
		U11: v.At(0, 0), U12: v.At(0, 1), U13: v.At(0, 2),
		U21: v.At(1, 0), U22: v.At(1, 1), U23: v.At(1, 2),
		U31: v.At(2, 0), U32: v.At(2, 1), U33: v.At(2, 2),
	}
}

//Rows returns the lattice vectors as 3 rows.
func (L LatticeVectors) Rows() [3][3]float64 {
	return [3][3]float64{
		{L.U11, L.U12, L.U13},
		{L.U21, L.U22, L.U23},
		{L.U31, L.U32, L.U33},
	}
}

//PlotSetup lists the per-atom properties present in the data and,
//for trajectories, which of them is the frame index.
type PlotSetup struct {
	MoleculePropertyList []string `json:"moleculePropertyList"`
	FrameProperty        string   `json:"frameProperty,omitempty"`
}

//MoleculeData holds the atoms of a view. It is one of two variants: the
//records themselves (InlineData) or the absolute path of a CSV file
//containing them (FileReference). Never both.
type MoleculeData struct {
	Data         []Record
	DataFilename string
}

//InlineData returns a MoleculeData with the records in the document.
func InlineData(records []Record) MoleculeData {
	if records == nil {
		records = make([]Record, 0)
	}
	return MoleculeData{Data: records}
}

//FileReference returns a MoleculeData pointing to a CSV file.
func FileReference(path string) MoleculeData {
	return MoleculeData{DataFilename: path}
}

//IsFileReference returns true if the atoms are in an external file.
func (M MoleculeData) IsFileReference() bool {
	return M.DataFilename != ""
}

type inlineJSON struct {
	Data []Record `json:"data"`
}

type fileJSON struct {
	DataFilename string `json:"dataFilename"`
}

//MarshalJSON writes {"data": [...]} or {"dataFilename": "..."}. The data
//array is never null.
func (M MoleculeData) MarshalJSON() ([]byte, error) {
	if M.IsFileReference() {
		return json.Marshal(fileJSON{M.DataFilename})
	}
	data := M.Data
	if data == nil {
		data = make([]Record, 0)
	}
	return json.Marshal(inlineJSON{data})
}

//UnmarshalJSON reads either variant.
func (M *MoleculeData) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data         *[]Record `json:"data"`
		DataFilename string    `json:"dataFilename"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Data != nil && raw.DataFilename != "" {
		return fmt.Errorf("convert: moleculeData has both data and dataFilename")
	}
	if raw.DataFilename != "" {
		*M = FileReference(raw.DataFilename)
		return nil
	}
	if raw.Data == nil {
		*M = InlineData(nil)
		return nil
	}
	*M = InlineData(*raw.Data)
	return nil
}

//Record is one atom. Frame is only meaningful, and only
//serialized, if Framed is true.
type Record struct {
	X      float64
	Y      float64
	Z      float64
	Atom   string
	Frame  int
	Framed bool
}

type plainRecord struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Atom string  `json:"atom"`
}

type framedRecord struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Atom  string  `json:"atom"`
	Frame int     `json:"frame"`
}

//MarshalJSON writes {x, y, z, atom} plus frame for framed records.
func (R Record) MarshalJSON() ([]byte, error) {
	if R.Framed {
		return json.Marshal(framedRecord{R.X, R.Y, R.Z, R.Atom, R.Frame})
	}
	return json.Marshal(plainRecord{R.X, R.Y, R.Z, R.Atom})
}

//UnmarshalJSON reads a record, setting Framed if a frame field is present.
func (R *Record) UnmarshalJSON(b []byte) error {
	var raw struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Z     float64 `json:"z"`
		Atom  string  `json:"atom"`
		Frame *int    `json:"frame"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*R = Record{X: raw.X, Y: raw.Y, Z: raw.Z, Atom: raw.Atom}
	if raw.Frame != nil {
		R.Frame = *raw.Frame
		R.Framed = true
	}
	return nil
}
