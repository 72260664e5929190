/*
 * chem.go, part of elview.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"fmt"

	v3 "github.com/rmera/elview/v3"
)

/**Note: Some functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to accessing out-of bounds fields**/

//Atom contains the information for one atom, except for the coordinates, which will be in a matrix.
type Atom struct {
	Name   string
	ID     int
	Tag    int //Just added this for something that someone might want to keep that is not a float.
	Symbol string
	Mass   float64
	Charge float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

/*****Topology type***/

//Topology contains information about a structure which is not expected to change in time (i.e. everything except for coordinates and the cell)
type Topology struct {
	Atoms    []*Atom
	charge   int
	unpaired int
}

//NewTopology returns a topology with the given atoms, charge and unpaired electrons.
//It doesn't check for correct charge or unpaired electrons.
func NewTopology(ats []*Atom, charge, unpaired int) *Topology {
	top := new(Topology)
	if ats == nil {
		ats = make([]*Atom, 0)
	}
	top.Atoms = ats
	top.charge = charge
	top.unpaired = unpaired
	return top
}

//Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

//Unpaired gets the number of unpaired electrons in the topology
func (T *Topology) Unpaired() int {
	return T.unpaired
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//AppendAtom appends an atom at the end of the topology
func (T *Topology) AppendAtom(at *Atom) {
	T.Atoms = append(T.Atoms, at)
}

//CopyAtoms returns a copy of the topology. The atoms are copied, not shared.
func (T *Topology) CopyAtoms() *Topology {
	ats := make([]*Atom, T.Len())
	for key, val := range T.Atoms {
		ats[key] = val.Copy()
	}
	return NewTopology(ats, T.charge, T.unpaired)
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Symbols returns the element symbols of all atoms, in order.
func (T *Topology) Symbols() []string {
	ret := make([]string, T.Len())
	for i, v := range T.Atoms {
		ret[i] = v.Symbol
	}
	return ret
}

/**Type Structure**/

//Structure is one snapshot of a system: a topology, the coordinates
//for each of its atoms and the 3x3 cell, with one lattice vector per row.
//Several structures (i.e. the frames of a trajectory) can share one topology.
type Structure struct {
	*Topology
	Coords *v3.Matrix
	Cell   *v3.Matrix
}

//NewStructure returns a structure with the given topology, coordinates and cell.
//A nil cell is replaced by a zero cell, as for non-periodic systems.
//It returns an error if the structure would be corrupted (see Corrupted).
func NewStructure(top *Topology, coords, cell *v3.Matrix) (*Structure, error) {
	if top == nil {
		return nil, CError{"Supplied a nil Topology", []string{"NewStructure"}}
	}
	if coords == nil {
		return nil, CError{"Supplied nil coordinates", []string{"NewStructure"}}
	}
	if cell == nil {
		cell = v3.Zeros(3)
	}
	S := &Structure{Topology: top, Coords: coords, Cell: cell}
	if err := S.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewStructure")
	}
	return S, nil
}

//Corrupted checks whether the structure is corrupted, i.e. the
//coordinates don't match the number of atoms, or the cell is not 3x3.
func (S *Structure) Corrupted() error {
	if S.Topology == nil || S.Coords == nil {
		return CError{"Structure with nil topology or coordinates", []string{"Corrupted"}}
	}
	if S.Len() != S.Coords.NVecs() {
		return CError{fmt.Sprintf("Inconsistent coordinates/atoms: Atoms %d, coords: %d", S.Len(), S.Coords.NVecs()), []string{"Corrupted"}}
	}
	if S.Cell == nil || S.Cell.NVecs() != 3 {
		return CError{"The cell must have exactly 3 lattice vectors", []string{"Corrupted"}}
	}
	return nil
}

//Position returns the cartesian coordinates of the ith atom.
func (S *Structure) Position(i int) [3]float64 {
	r := S.Coords.RawRowView(i)
	return [3]float64{r[0], r[1], r[2]}
}

/**Type Trajectory**/

//Trajectory is an ordered, in-memory sequence of structures. It implements Framer.
type Trajectory struct {
	frames []*Structure
}

//NewTrajectory returns a trajectory with the given frames, in order.
func NewTrajectory(frames ...*Structure) *Trajectory {
	T := new(Trajectory)
	T.frames = append(T.frames, frames...)
	return T
}

//MakeTrajectory builds a trajectory where every frame shares the topology top.
//cells can be nil, otherwise it needs one cell per set of coordinates.
func MakeTrajectory(top *Topology, coords []*v3.Matrix, cells []*v3.Matrix) (*Trajectory, error) {
	if cells != nil && len(cells) != len(coords) {
		return nil, CError{fmt.Sprintf("%d cells given for %d frames", len(cells), len(coords)), []string{"MakeTrajectory"}}
	}
	T := new(Trajectory)
	T.frames = make([]*Structure, 0, len(coords))
	for i, c := range coords {
		var cell *v3.Matrix
		if cells != nil {
			cell = cells[i]
		}
		s, err := NewStructure(top, c, cell)
		if err != nil {
			return nil, CError{fmt.Sprintf("frame %d: %s", i, err.Error()), []string{"MakeTrajectory"}}
		}
		T.frames = append(T.frames, s)
	}
	return T, nil
}

//AddFrame appends s at the end of the trajectory.
func (T *Trajectory) AddFrame(s *Structure) {
	if s == nil {
		panic("Attempted to add nil frame")
	}
	T.frames = append(T.frames, s)
}

//NFrames returns the number of frames in the trajectory
func (T *Trajectory) NFrames() int {
	return len(T.frames)
}

//Frame returns the ith frame of the trajectory. Panics if out of range.
func (T *Trajectory) Frame(i int) *Structure {
	if i >= len(T.frames) || i < 0 {
		panic(fmt.Sprintf("Frame requested (%d) out of range", i))
	}
	return T.frames[i]
}

//Errors

//CError is the general error type of the chem package. It fulfills chem.Error.
type CError struct {
	msg  string
	deco []string
}

//Error returns the error message.
func (err CError) Error() string { return err.msg }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//errDecorate is a helper function that asserts that the error
//implements chem.Error and decorates the error with the caller's name before returning it.
//Errors that don't implement chem.Error are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
