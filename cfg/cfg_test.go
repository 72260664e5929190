/*
 * cfg_test.go, part of elview.
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

package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/elview/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(Te *testing.T) {
	c := Default()
	assert.Equal(Te, ".", c.OutputDir)
	assert.Equal(Te, convert.DefaultThreshold, c.Threshold)
	assert.Equal(Te, convert.DefaultMoleculeName, c.MoleculeName)
	assert.True(Te, c.SaveConfig)
	assert.False(Te, c.AmberBox)
	assert.Equal(Te, "config.json", c.ConfigFilename)
	assert.Equal(Te, Log{Level: "info", Format: "console"}, c.Log)
	assert.NoError(Te, c.Check())
}

func TestLoad(Te *testing.T) {
	dir := Te.TempDir()
	yml := filepath.Join(dir, "elview.yaml")
	require.NoError(Te, os.WriteFile(yml, []byte(`out: results
threshold: 5000
name: water
view: true
amber_box: true
log:
  level: debug
  format: json
`), 0o644))
	env := filepath.Join(dir, "test.env")
	require.NoError(Te, os.WriteFile(env, []byte("ELVIEW_FRONTEND=/opt/electrolens/main.js\n"), 0o644))
	Te.Cleanup(func() { os.Unsetenv("ELVIEW_FRONTEND") })
	Te.Setenv("ELVIEW_THRESHOLD", "42")

	c, err := Load(yml, env)
	require.NoError(Te, err)
	assert.Equal(Te, "results", c.OutputDir)
	assert.Equal(Te, 42, c.Threshold, "the environment should take precedence over the file")
	assert.Equal(Te, "water", c.MoleculeName)
	assert.True(Te, c.View)
	assert.True(Te, c.AmberBox)
	assert.True(Te, c.SaveConfig)
	assert.Equal(Te, "/opt/electrolens/main.js", c.FrontEnd)
	assert.Equal(Te, Log{Level: "debug", Format: "json"}, c.Log)
}

func TestLoadErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	assert.Error(Te, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(Te, os.WriteFile(bad, []byte("threshold: -1\n"), 0o644))
	_, err = Load(bad, filepath.Join(dir, "missing.env"))
	assert.Error(Te, err)
}

func TestCheck(Te *testing.T) {
	c := Default()
	c.Log.Level = "verbose"
	assert.Error(Te, c.Check())
	c = Default()
	c.Log.Format = "xml"
	assert.Error(Te, c.Check())
	c = Default()
	c.ConfigFilename = filepath.Join("a", "b.json")
	assert.Error(Te, c.Check())
	c = Default()
	c.OutputDir = ""
	assert.Error(Te, c.Check())
}
