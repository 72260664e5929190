/*
 * preview_test.go, part of elview.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/elview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(Te *testing.T) {
	traj, err := chem.XYZFileRead("../test/methane.xyz")
	require.NoError(Te, err)
	s := traj.Frame(0)
	symbols, groups := bySymbol(s)
	assert.Equal(Te, []string{"C", "H"}, symbols)
	assert.Len(Te, groups["H"], 4)

	name := filepath.Join(Te.TempDir(), "methane.png")
	require.NoError(Te, Preview(s, "Methane", name))
	info, err := os.Stat(name)
	require.NoError(Te, err)
	assert.NotZero(Te, info.Size())

	_, err = PreviewPlot(nil, "nothing")
	assert.Error(Te, err)
}

func TestColors(Te *testing.T) {
	r, g, b := iHVS2RGB(0, 1, 1)
	assert.Equal(Te, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = iHVS2RGB(240, 1, 1)
	assert.Equal(Te, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})
	r, g, b = iHVS2RGB(100, 0.5, 0)
	assert.Equal(Te, [3]uint8{127, 127, 127}, [3]uint8{r, g, b})

	seen := make(map[[3]uint8]bool)
	for i := 0; i < 5; i++ {
		r, g, b := colors(i, 5)
		seen[[3]uint8{r, g, b}] = true
	}
	assert.Len(Te, seen, 5)
	assert.Greater(Te, glyphRadius("Xx"), glyphRadius("H"))
}
