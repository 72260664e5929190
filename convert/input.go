/*
 * input.go, part of elview.
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
	"fmt"

	chem "github.com/rmera/elview"
)

//Kind tells whether an Input is a single structure or a sequence of frames.
type Kind int

const (
	KindSingle Kind = iota + 1
	KindFramed
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindFramed:
		return "framed"
	}
	return "invalid"
}

//Input is the data to be converted: either one structure (Single) or
//an ordered sequence of structures (Framed). The zero value is invalid.
type Input struct {
	kind   Kind
	single *chem.Structure
	frames chem.Framer
}

//Single returns an Input for one structure.
func Single(s *chem.Structure) Input {
	return Input{kind: KindSingle, single: s}
}

//Framed returns an Input for a sequence of frames. A one-frame
//trajectory is still framed.
func Framed(f chem.Framer) Input {
	return Input{kind: KindFramed, frames: f}
}

//InputOf decides the kind of Input for data: a *chem.Structure is Single,
//anything implementing chem.Framer is Framed. An Input is returned as it is.
func InputOf(data interface{}) (Input, error) {
	switch d := data.(type) {
	case Input:
		return d, nil
	case *chem.Structure:
		return Single(d), nil
	case chem.Framer:
		return Framed(d), nil
	}
	return Input{}, fmt.Errorf("convert: can't convert data of type %T, need a *chem.Structure or a chem.Framer", data)
}

//Kind returns the kind of the input.
func (I Input) Kind() Kind { return I.kind }

//IsFramed returns true if the input is a sequence of frames.
func (I Input) IsFramed() bool { return I.kind == KindFramed }

//Structure returns the structure of a Single input, nil otherwise.
func (I Input) Structure() *chem.Structure { return I.single }

//Frames returns the frames of a Framed input, nil otherwise.
func (I Input) Frames() chem.Framer { return I.frames }

//Reference returns the structure whose cell defines the geometry of the document:
//the first frame for framed inputs, the only structure otherwise.
func (I Input) Reference() (*chem.Structure, error) {
	switch I.kind {
	case KindSingle:
		if I.single == nil {
			return nil, fmt.Errorf("convert: nil structure")
		}
		return I.single, nil
	case KindFramed:
		if I.frames == nil || I.frames.NFrames() == 0 {
			return nil, ErrNoFrames
		}
		return I.frames.Frame(0), nil
	}
	return nil, fmt.Errorf("convert: uninitialized input")
}
