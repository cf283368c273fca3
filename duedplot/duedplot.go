/*
 * duedplot.go, part of dued.
 *
 * Copyright 2026 The dued authors
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

//Package duedplot draws quick-look plots of an assembled simulation.
package duedplot

import (
	"image/color"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//TimePlot plots the simulation time of each frame against the frame index, and
//saves it to filename. The format follows the extension (png, svg, pdf...).
//A run with uneven output intervals or a misordered frame shows as a kink.
func TimePlot(times []float64, units, filename string) error {
	if len(times) == 0 {
		return errors.New("duedplot: no times to plot")
	}
	pts := make(plotter.XYs, len(times))
	for i, t := range times {
		pts[i].X = float64(i)
		pts[i].Y = t
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = "Frame times"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Time"
	if units != "" {
		p.Y.Label.Text += " (" + units + ")"
	}
	p.Add(plotter.NewGrid())
	l, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "duedplot")
	}
	l.Color = color.RGBA{B: 200, A: 255}
	p.Add(l)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "duedplot: can't save %s", filename)
	}
	return nil
}
