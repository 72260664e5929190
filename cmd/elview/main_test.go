/*
 * main_test.go, part of elview.
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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/elview"
	"github.com/rmera/elview/cfg"
	"github.com/rmera/elview/convert"
	"github.com/rmera/elview/traj/stf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseFlags(Te *testing.T) {
	var usage bytes.Buffer
	opts, apply, rest, err := parseFlags([]string{"-out", "results", "-threshold", "7", "-view", "-amber-box", "water.xyz"}, &usage)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"water.xyz"}, rest)
	assert.False(Te, opts.pick)
	c := cfg.Default()
	c.MoleculeName = "from file"
	apply(c)
	assert.Equal(Te, "results", c.OutputDir)
	assert.Equal(Te, 7, c.Threshold)
	assert.True(Te, c.View)
	assert.True(Te, c.AmberBox)
	assert.Equal(Te, "from file", c.MoleculeName, "flags not given should not change the configuration")

	_, _, _, err = parseFlags([]string{"-nope"}, &usage)
	assert.Error(Te, err)
}

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	png := filepath.Join(dir, "water.png")
	var stderr bytes.Buffer
	code := run([]string{"-env", filepath.Join(dir, "none.env"), "-out", dir, "-validate", "-preview", png, "-name", "water", "../../test/water.xyz"}, &stderr)
	require.Equal(Te, 0, code, stderr.String())
	doc := new(convert.Document)
	b, err := os.ReadFile(filepath.Join(dir, convert.DefaultJSONName))
	require.NoError(Te, err)
	require.NoError(Te, json.Unmarshal(b, doc))
	assert.Equal(Te, "water", doc.Views[0].MoleculeName)
	assert.Equal(Te, "frame", doc.PlotSetup.FrameProperty)
	_, err = os.Stat(png)
	assert.NoError(Te, err)

	assert.Equal(Te, 2, run([]string{"-env", filepath.Join(dir, "none.env")}, &stderr))
	assert.Equal(Te, 1, run([]string{"-env", filepath.Join(dir, "none.env"), "-out", dir, "nothere.xyz"}, &stderr))
}

func TestInputPatterns(Te *testing.T) {
	assert.Subset(Te, inputPatterns, []string{"*.xyz", "*.stf", "*.crd", "*.mdcrd"})
	for _, p := range inputPatterns {
		_, err := readInput("nothere"+p[1:], "", false, zaptest.NewLogger(Te))
		require.Error(Te, err)
		assert.NotContains(Te, err.Error(), "unknown format", p)
	}
}

func TestReadInput(Te *testing.T) {
	log := zaptest.NewLogger(Te)
	in, err := readInput("../../test/ho.xyz", "", false, log)
	require.NoError(Te, err)
	assert.Equal(Te, convert.KindSingle, in.Kind())

	traj, err := chem.XYZFileRead("../../test/water.xyz")
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "water.stf")
	require.NoError(Te, stf.WriteAll(name, traj, 3))
	in, err = readInput(name, "", false, log)
	require.NoError(Te, err)
	assert.Equal(Te, convert.KindFramed, in.Kind())
	assert.Equal(Te, 3, in.Frames().NFrames())
	in, err = readInput(name, "../../test/water.xyz", false, log)
	require.NoError(Te, err)
	assert.Equal(Te, 3, in.Frames().NFrames())

	in, err = readInput("../../test/four.crd", "../../test/four.xyz", true, log)
	require.NoError(Te, err)
	assert.Equal(Te, 2, in.Frames().NFrames())
	assert.Equal(Te, "N", in.Frames().Frame(1).Atom(2).Symbol)
	_, err = readInput("../../test/four.crd", "", true, log)
	assert.Error(Te, err)

	_, err = readInput("structure.pdb", "", false, log)
	assert.Error(Te, err)
}
