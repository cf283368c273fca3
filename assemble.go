/*
 * assemble.go, part of dued.
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

package dued

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Data is the assembled simulation: steps x rows x cols x nvar values,
// stored as one Frame per time step.
type Data struct {
	frames []*Frame
	rows   int
	cols   int
	nvar   int
}

// Dims returns the number of steps, grid rows, grid columns and variables.
func (D *Data) Dims() (steps, rows, cols, nvar int) {
	return len(D.frames), D.rows, D.cols, D.nvar
}

// Steps returns the number of time steps.
func (D *Data) Steps() int {
	return len(D.frames)
}

// At returns variable v at grid point (i, j) of step t.
func (D *Data) At(t, i, j, v int) float64 {
	return D.frames[t].At3(i, j, v)
}

// Frame returns the frame of step t. It is not a copy.
func (D *Data) Frame(t int) *Frame {
	return D.frames[t]
}

// Assemble stacks frames along the time axis, in the given order, and applies
// the transforms selected in opts: ghost cell trimming, then the FLASH axis
// swap, then the unit scaling. It returns the assembled data and the time of
// each step, read at grid point (0, 0) after the transforms. The frames
// belong to the returned Data afterwards and may be modified.
func Assemble(frames []*Frame, opts Options) (*Data, []float64, error) {
	units := HEDP
	if opts.Units != "" {
		u, err := ParseUnits(string(opts.Units))
		if err != nil {
			return nil, nil, errDecorate(err, "Assemble")
		}
		units = u
	}
	if len(frames) == 0 {
		return nil, nil, newShapeInferenceError("", "no frames to assemble", "Assemble")
	}
	rows, cols := frames[0].GridDims()
	nvar := frames[0].NVar()
	for t, F := range frames {
		r, c := F.GridDims()
		if r != rows || c != cols || F.NVar() != nvar {
			return nil, nil, newShapeMismatchError(fmt.Sprintf("step %d", t), r*c*F.NVar(), rows*cols*nvar, "Assemble")
		}
	}
	if opts.TrimGhosts {
		if rows < 3 || cols < 3 {
			return nil, nil, errors.Newf("dued: can't trim ghost cells from a %dx%d grid", rows, cols)
		}
		trimmed := make([]*Frame, len(frames))
		for t, F := range frames {
			trimmed[t] = F.Trim()
		}
		frames = trimmed
		rows -= 2
		cols -= 2
	}
	D := &Data{frames: frames, rows: rows, cols: cols, nvar: nvar}
	cgs := units == CGS
	c, err := opts.Columns.check(nvar, opts.FlashComp, cgs)
	if err != nil {
		return nil, nil, err
	}
	if opts.FlashComp {
		for _, F := range D.frames {
			swapNegate(F.Dense, c.X, c.Y)
			swapNegate(F.Dense, c.VX, c.VY)
		}
	}
	if cgs {
		for _, F := range D.frames {
			scaleCol(F.Dense, c.X, SpaceScale)
			scaleCol(F.Dense, c.Y, SpaceScale)
			scaleCol(F.Dense, c.Time, TimeScale)
		}
	}
	times := make([]float64, len(D.frames))
	for t, F := range D.frames {
		times[t] = F.At3(0, 0, c.Time)
	}
	return D, times, nil
}

//check returns the columns with absolute indexes, or an error if any of the
//columns needed falls out of [0, nvar). The time column is always needed, the
//velocities only for the axis swap and the positions for the swap or the scaling.
func (C Columns) check(nvar int, swap, scale bool) (Columns, error) {
	ret := C.Resolve(nvar)
	needed := []int{ret.Time}
	if swap || scale {
		needed = append(needed, ret.X, ret.Y)
	}
	if swap {
		needed = append(needed, ret.VX, ret.VY)
	}
	for _, v := range needed {
		if v < 0 || v >= nvar {
			return ret, errors.Newf("dued: column %d out of range for frames with %d variables", v, nvar)
		}
	}
	return ret, nil
}

//swapNegate sets columns a and b of M to -b and -a.
func swapNegate(M *mat.Dense, a, b int) {
	ca := mat.Col(nil, a, M)
	cb := mat.Col(nil, b, M)
	floats.Scale(-1, ca)
	floats.Scale(-1, cb)
	M.SetCol(a, cb)
	M.SetCol(b, ca)
}

func scaleCol(M *mat.Dense, c int, factor float64) {
	r, _ := M.Dims()
	col := M.Slice(0, r, c, c+1).(*mat.Dense)
	col.Scale(factor, col)
}
