/*
 * csv.go, part of elview.
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
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	chem "github.com/rmera/elview"
)

//CSVHeader is the header row of the intermediate file. Note that the
//symbol column is "atoms", not "atom" as in the inline records.
var CSVHeader = []string{"x", "y", "z", "atoms", "frame"}

//writeCSV writes every atom of every frame, frame-major, to the file name,
//and returns the number of rows written (not counting the header) and the absolute path of the file.
func writeCSV(name string, frames chem.Framer) (int, string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return 0, "", fmt.Errorf("convert: resolving %s: %w", name, err)
	}
	fout, err := os.Create(abs)
	if err != nil {
		return 0, "", fmt.Errorf("convert: creating the data file: %w", err)
	}
	defer fout.Close()
	buf := bufio.NewWriter(fout)
	w := csv.NewWriter(buf)
	if err := w.Write(CSVHeader); err != nil {
		return 0, "", fmt.Errorf("convert: writing the data file: %w", err)
	}
	rows := 0
	row := make([]string, 5)
	for f := 0; f < frames.NFrames(); f++ {
		s := frames.Frame(f)
		if err := s.Corrupted(); err != nil {
			return rows, "", fmt.Errorf("convert: frame %d: %w", f, err)
		}
		frame := strconv.Itoa(f)
		for i := 0; i < s.Len(); i++ {
			p := s.Position(i)
			row[0] = formatFloat(p[0])
			row[1] = formatFloat(p[1])
			row[2] = formatFloat(p[2])
			row[3] = s.Atom(i).Symbol
			row[4] = frame
			if err := w.Write(row); err != nil {
				return rows, "", fmt.Errorf("convert: writing the data file: %w", err)
			}
			rows++
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return rows, "", fmt.Errorf("convert: writing the data file: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return rows, "", fmt.Errorf("convert: writing the data file: %w", err)
	}
	return rows, abs, nil
}

//formatFloat gives the shortest plain decimal representation of v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
