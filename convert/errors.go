/*
 * errors.go, part of elview.
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

import "errors"

var (
	//ErrNoFrames is returned when a framed input has no frames to take the cell from.
	ErrNoFrames = errors.New("convert: framed input has no frames")

	//ErrCell is returned when the reference cell is missing or is not a 3x3 matrix.
	ErrCell = errors.New("convert: the cell must be a 3x3 matrix")
)
