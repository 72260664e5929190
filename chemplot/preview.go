/*
 * preview.go, part of elview.
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
	"fmt"
	"image/color"
	"math"

	chem "github.com/rmera/elview"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Size of the saved preview, per side.
const previewSize = 12 * vg.Centimeter

//PreviewPlot returns a scatter plot of the atoms of s, projected on the xy plane,
//with one series per element, in order of first appearance.
func PreviewPlot(s *chem.Structure, title string) (*plot.Plot, error) {
	if s == nil {
		return nil, fmt.Errorf("chemplot: nil structure")
	}
	if err := s.Corrupted(); err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "x (Å)"
	p.Y.Label.Text = "y (Å)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	symbols, groups := bySymbol(s)
	for key, sym := range symbols {
		idx := groups[sym]
		pts := make(plotter.XYs, len(idx))
		for i, v := range idx {
			r := s.Position(v)
			pts[i].X = r[0]
			pts[i].Y = r[1]
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		r, g, b := colors(key, len(symbols))
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  color.RGBA{R: r, G: g, B: b, A: 255},
			Radius: glyphRadius(sym),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(sc)
		p.Legend.Add(sym, sc)
	}
	return p, nil
}

//Preview saves the plot from PreviewPlot to filename. The format is given by
//the extension (png, svg, pdf...).
func Preview(s *chem.Structure, title, filename string) error {
	p, err := PreviewPlot(s, title)
	if err != nil {
		return err
	}
	return p.Save(previewSize, previewSize, filename)
}

//bySymbol returns the element symbols in s, in order of first appearance, and the
//indexes of the atoms with each symbol.
func bySymbol(s *chem.Structure) ([]string, map[string][]int) {
	symbols := make([]string, 0, 4)
	groups := make(map[string][]int)
	for i := 0; i < s.Len(); i++ {
		sym := s.Atom(i).Symbol
		if _, ok := groups[sym]; !ok {
			symbols = append(symbols, sym)
		}
		groups[sym] = append(groups[sym], i)
	}
	return symbols, groups
}

//glyphRadius grows with the van der Waals radius of the element.
func glyphRadius(symbol string) vg.Length {
	r, ok := chem.VdwRadius(symbol)
	if !ok {
		r = 1.5
	}
	return vg.Points(1.5 * r)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors spreads steps hues over the color wheel, skipping the yellows,
//which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
