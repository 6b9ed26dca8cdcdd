/*
 * pdplot.go, part of gophase.
 *
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
 *
 * gophase is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package pdplot draws phase diagrams and related quantities with gonum/plot.
//The format of the image is given by the extension of the file name
//(png, svg, pdf, eps, jpg or tif).
package pdplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/phasediag"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//ErrUnsupported is returned, wrapped, when a diagram can't be drawn by a function.
var ErrUnsupported = errors.New("unsupported diagram")

var (
	stableColor   = color.RGBA{R: 20, G: 60, B: 200, A: 255}
	unstableColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

const (
	width  = 5 * vg.Inch
	height = 4 * vg.Inch
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//BinaryHull plots the formation energy per atom of the entries of a two-element diagram
//against the fraction of the second element. The stable entries are labeled and joined
//by the hull.
func BinaryHull(q phasediag.Query, title, filename string) error {
	els := q.Elements()
	if len(els) != 2 {
		return fmt.Errorf("pdplot: BinaryHull: %s has %d elements: %w", chem.ChemicalSystem(els), len(els), ErrUnsupported)
	}
	x := els[1]
	var stable, unstable plotter.XYs
	var labels []string
	for _, v := range q.Entries() {
		ef, err := q.FormationEnergyPerAtom(v)
		if err != nil {
			return fmt.Errorf("pdplot: BinaryHull: %w", err)
		}
		xy := plotter.XY{X: v.Composition().Fraction(x), Y: ef}
		if q.IsStable(v) {
			stable = append(stable, xy)
			labels = append(labels, v.Name())
		} else {
			unstable = append(unstable, xy)
		}
	}
	p := basicPlot(title, fmt.Sprintf("x(%s)", x), "Formation energy per atom")
	p.X.Min = 0
	p.X.Max = 1

	//the hull line goes through the stable points in order of composition.
	hull := make(plotter.XYs, len(stable))
	copy(hull, stable)
	sort.Slice(hull, func(i, j int) bool { return hull[i].X < hull[j].X })
	l, err := plotter.NewLine(hull)
	if err != nil {
		return fmt.Errorf("pdplot: BinaryHull: %w", err)
	}
	l.LineStyle.Color = stableColor
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)

	s, err := plotter.NewScatter(stable)
	if err != nil {
		return fmt.Errorf("pdplot: BinaryHull: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Color = stableColor
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)
	lab, err := plotter.NewLabels(plotter.XYLabels{XYs: stable, Labels: labels})
	if err != nil {
		return fmt.Errorf("pdplot: BinaryHull: %w", err)
	}
	for i := range lab.TextStyle {
		lab.TextStyle[i].YAlign = draw.YTop
		lab.TextStyle[i].XAlign = draw.XCenter
	}
	p.Add(lab)
	if len(unstable) > 0 {
		u, err := plotter.NewScatter(unstable)
		if err != nil {
			return fmt.Errorf("pdplot: BinaryHull: %w", err)
		}
		u.GlyphStyle.Shape = draw.CrossGlyph{}
		u.GlyphStyle.Color = unstableColor
		p.Add(u)
	}
	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("pdplot: BinaryHull: %w", err)
	}
	return nil
}

//EAboveHist plots a histogram of the energies above hull of the unstable entries
//of a diagram, which must have at least one.
func EAboveHist(q phasediag.Query, title, filename string) error {
	unstable := q.UnstableEntries()
	if len(unstable) == 0 {
		return fmt.Errorf("pdplot: EAboveHist: no unstable entries: %w", ErrUnsupported)
	}
	vals := make(plotter.Values, 0, len(unstable))
	for _, v := range unstable {
		e, err := q.EAboveHull(v)
		if err != nil {
			return fmt.Errorf("pdplot: EAboveHist: %w", err)
		}
		vals = append(vals, e)
	}
	bins := int(math.Max(5, math.Ceil(math.Sqrt(float64(len(vals))))))
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return fmt.Errorf("pdplot: EAboveHist: %w", err)
	}
	h.FillColor = unstableColor
	p := basicPlot(title, "Energy above hull per atom", "Entries")
	p.Add(h)
	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("pdplot: EAboveHist: %w", err)
	}
	return nil
}
