/*
 * stf_test.go, part of elview.
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

package stf

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/elview"
	v3 "github.com/rmera/elview/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rootdirtest string = "../../test"

//TestSTFRoundTrip writes a trajectory with every supported compression, and reads it back.
func TestSTFRoundTrip(Te *testing.T) {
	traj, err := chem.XYZFileRead(filepath.Join(rootdirtest, "water.xyz"))
	require.NoError(Te, err)
	dir := Te.TempDir()
	for _, ext := range []string{".stf", ".stz", ".stl", ".str"} {
		name := filepath.Join(dir, "water"+ext)
		require.NoError(Te, WriteAll(name, traj, 3), ext)
		again, err := ReadAll(name, nil)
		require.NoError(Te, err, ext)
		require.Equal(Te, traj.NFrames(), again.NFrames(), ext)
		assert.Equal(Te, traj.Frame(0).Symbols(), again.Frame(0).Symbols(), ext)
		for i := 0; i < traj.NFrames(); i++ {
			a, b := traj.Frame(i), again.Frame(i)
			for j := 0; j < a.Len(); j++ {
				p, q := a.Position(j), b.Position(j)
				for k := range p {
					assert.InDelta(Te, p[k], q[k], 0.0011, "%s frame %d atom %d", ext, i, j)
				}
			}
			assert.Equal(Te, a.Cell.RawMatrix().Data, b.Cell.RawMatrix().Data, ext)
		}
	}
}

func TestSTFNext(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "two.stf")
	w, err := NewWriter(name, 2, map[string]string{"comment": "two atoms"})
	require.NoError(Te, err)
	assert.Equal(Te, 2, w.Len())
	c, err := v3.NewMatrix([]float64{1.234, -2.5, 0, 10, 20, 30})
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(c, []float64{5, 0, 0, 0, 5, 0, 0, 0, 5}))
	require.NoError(Te, w.WNext(c))
	assert.Error(Te, w.WNext(v3.Zeros(3)))
	assert.Error(Te, w.WNext(nil))
	require.NoError(Te, w.Close())
	assert.Error(Te, w.WNext(c), "a closed writer should not write")

	r, header, err := New(name)
	require.NoError(Te, err)
	assert.Equal(Te, "two atoms", header["comment"])
	assert.Equal(Te, "2", header["prec"])
	assert.True(Te, r.Readable())
	assert.Equal(Te, 2, r.Len())
	var _ chem.Traj = r

	got := v3.Zeros(2)
	box := make([]float64, 9)
	require.NoError(Te, r.Next(got, box))
	assert.InDelta(Te, 1.23, got.At(0, 0), 1e-12)
	assert.InDelta(Te, -2.5, got.At(0, 1), 1e-12)
	assert.Equal(Te, 30.0, got.At(1, 2))
	assert.Equal(Te, []float64{5, 0, 0, 0, 5, 0, 0, 0, 5}, box)

	require.NoError(Te, r.Next(nil, box))
	assert.Equal(Te, make([]float64, 9), box, "a frame without box should give a zero box")

	err = r.Next(got)
	require.Error(Te, err)
	_, ok := err.(chem.LastFrameError)
	assert.True(Te, ok, "expected the last frame error, got %v", err)
	assert.False(Te, r.Readable())
}

func TestSTFErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, _, err := New(filepath.Join(dir, "nothere.stf"))
	assert.Error(Te, err)

	traj, err := chem.XYZFileRead(filepath.Join(rootdirtest, "water.xyz"))
	require.NoError(Te, err)
	name := filepath.Join(dir, "water.stf")
	require.NoError(Te, WriteAll(name, traj, 0))
	ho, err := chem.XYZFileRead(filepath.Join(rootdirtest, "ho.xyz"))
	require.NoError(Te, err)
	_, err = ReadAll(name, ho.Frame(0).Topology)
	require.Error(Te, err)
	terr, ok := err.(chem.TrajError)
	require.True(Te, ok)
	assert.Equal(Te, "stf", terr.Format())
	assert.Equal(Te, name, terr.FileName())
	assert.True(Te, terr.Critical())

	noTop := filepath.Join(dir, "notop.stf")
	w, err := NewWriter(noTop, 1, nil)
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(v3.Zeros(1)))
	require.NoError(Te, w.Close())
	_, err = ReadAll(noTop, nil)
	assert.Error(Te, err)

	plain := filepath.Join(dir, "plain.stz")
	require.NoError(Te, os.WriteFile(plain, []byte("not compressed"), 0o644))
	_, _, err = New(plain)
	assert.Error(Te, err)
}
