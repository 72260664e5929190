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

/*
Package stf reads and writes the simple trajectory format, a small, compressed,
plain-text trajectory format that is easy to implement in other languages.

Format

A STF file is compressed. The compression is given by the last letter of the file name:
'l' for LZW, 'z' for gzip, 'r' for raw deflate and anything else (i.e. the usual .stf) for z-standard.
The uncompressed content may only contain ASCII symbols.

The file starts with a header of key=value lines, terminated by a line with the characters "**",
one or more spaces, and the number of atoms per frame. The header must have at least the line

	prec=N

where N, a positive integer, is the precision. This package uses a default precision of 2.
The optional "topology" key holds a JSON array with the atoms of the system, each with at least
a "Symbol" field.

After the header comes one line per atom, per frame, with the x, y and z coordinates in Angstrom,
multiplied by 10^prec and rounded to an integer, separated by spaces, and nothing else.

Each frame ends with a line starting with the character "*", optionally followed by whitespace and
the 9 numbers of the 3 vectors of the simulation box, in Angstrom. The "**" sequence can only appear
at the end of the header.
*/
package stf
