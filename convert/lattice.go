/*
 * lattice.go, part of elview.
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

	v3 "github.com/rmera/elview/v3"
)

//Lattice returns the lattice constants (the lengths of the three rows of cell)
//and the lattice vectors (the rows of cell, each scaled to unit length, in the same order).
//A zero row gives a zero constant and a zero vector. cell must be 3x3.
func Lattice(cell *v3.Matrix) ([3]float64, *v3.Matrix, error) {
	var constants [3]float64
	if cell == nil || cell.Dense == nil || cell.IsEmpty() {
		return constants, nil, ErrCell
	}
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return constants, nil, fmt.Errorf("%w: got a %dx%d matrix", ErrCell, r, c)
	}
	for i := range constants {
		constants[i] = cell.VecNorm(i)
	}
	vectors := v3.Zeros(3)
	vectors.Unit(cell)
	return constants, vectors, nil
}
