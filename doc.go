/*
 * doc.go, part of elview.
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

/*Package chem is the main package of elview. It provides the atom, topology, structure and
trajectory types that the rest of the library converts for the ElectroLens viewer,
and readers/writers for (extended, multi-frame) XYZ files.


	**elview Capabilities**


    Reads/writes single and multi-frame extended XYZ files, including the
	simulation cell ("Lattice" key in the comment line).

    Reads/writes STF compressed trajectories, with box information
	(package traj/stf).

    Converts a structure or a trajectory into an ElectroLens configuration
	document, inlining the atoms or, for very large trajectories, moving
	them to a CSV file (package convert).

    Validates configuration documents against the ElectroLens schema.

    Draws a quick PNG preview of a structure (package chemplot).

    Launches the ElectroLens front end with a given configuration (package view).


elview uses the v3.Matrix type, based on gonum's Dense, for coordinates and cells. Each row
of a v3.Matrix represents one point in space or, for a cell, one lattice vector.*/
package chem
