/*
 * crd_test.go, part of elview.
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

package amberold

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/elview"
	v3 "github.com/rmera/elview/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrdNext(Te *testing.T) {
	r, err := New("../../test/four.crd", 4, true)
	require.NoError(Te, err)
	defer r.Close()
	assert.True(Te, r.Readable())
	assert.Equal(Te, 4, r.Len())
	coords := v3.Zeros(4)
	box := make([]float64, 9)
	require.NoError(Te, r.Next(coords, box))
	assert.Equal(Te, []float64{100.125, -100.125, 0.5}, coords.RawRowView(2))
	assert.Equal(Te, []float64{0, 0, -2}, coords.RawRowView(3))
	assert.Equal(Te, []float64{20, 0, 0, 0, 20, 0, 0, 0, 30}, box)
	//a frame can be skipped
	require.NoError(Te, r.Next(nil))
	err = r.Next(coords)
	require.Error(Te, err)
	_, ok := err.(chem.LastFrameError)
	assert.True(Te, ok)
	assert.False(Te, r.Readable())
}

func TestCrdReadAll(Te *testing.T) {
	top, err := chem.XYZFileRead("../../test/four.xyz")
	require.NoError(Te, err)
	traj, err := ReadAll("../../test/four.crd", top.Frame(0).Topology, true)
	require.NoError(Te, err)
	require.Equal(Te, 2, traj.NFrames())
	assert.Equal(Te, [3]float64{101.125, -100.125, 0.5}, traj.Frame(1).Position(2))
	assert.Equal(Te, [3]float64{2, 2, 3}, traj.Frame(1).Position(0))
	assert.Equal(Te, 30.0, traj.Frame(0).Cell.At(2, 2))
	assert.Equal(Te, "O", traj.Frame(1).Atom(1).Symbol)
}

func TestCrdNoAtoms(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "empty.crd")
	require.NoError(Te, os.WriteFile(name, []byte("no atoms\n"), 0644))
	traj, err := ReadAll(name, chem.NewTopology(nil, 0, 0), false)
	require.NoError(Te, err)
	assert.Equal(Te, 0, traj.NFrames())

	boxed := filepath.Join(dir, "boxed.crd")
	require.NoError(Te, os.WriteFile(boxed, []byte("no atoms\n  10.000  10.000  10.000\n  10.000  10.000  10.000\n"), 0644))
	traj, err = ReadAll(boxed, chem.NewTopology(nil, 0, 0), true)
	require.NoError(Te, err)
	assert.Equal(Te, 2, traj.NFrames())
	assert.Equal(Te, 0, traj.Frame(1).Len())
	assert.Equal(Te, 10.0, traj.Frame(1).Cell.At(1, 1))
}

func TestCrdErrors(Te *testing.T) {
	_, err := New("nothere.crd", 4, false)
	assert.Error(Te, err)
	_, err = ReadAll("../../test/four.crd", nil, false)
	assert.Error(Te, err)

	//without the box flag, the box line is read as the start of the next frame.
	top, err := chem.XYZFileRead("../../test/four.xyz")
	require.NoError(Te, err)
	_, err = ReadAll("../../test/four.crd", top.Frame(0).Topology, false)
	assert.Error(Te, err)

	name := filepath.Join(Te.TempDir(), "short.crd")
	require.NoError(Te, os.WriteFile(name, []byte("title\n   1.000   2.000\n"), 0644))
	r, err := New(name, 1, false)
	require.NoError(Te, err)
	err = r.Next(nil)
	require.Error(Te, err)
	_, ok := err.(chem.LastFrameError)
	assert.False(Te, ok)
}
