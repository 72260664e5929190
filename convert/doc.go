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

//Package convert turns a structure, or a trajectory, into the configuration
//document read by the ElectroLens front end.
//
//The document describes the system geometry (lattice constants and normalized
//lattice vectors of the reference cell) and one record per atom. Trajectories
//with as many atom-instances as the threshold (DefaultThreshold unless changed)
//or more get their atoms written to a CSV file instead, and the document only
//references that file. Every conversion also writes the document, as indented
//JSON, to the output directory.
package convert
