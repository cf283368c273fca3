/*
 * read.go, part of dued.
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

package h5

import (
	"github.com/cockroachdb/errors"
	"github.com/scigolib/hdf5"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Reader gives access to a container written by Write.
type Reader struct {
	f        *hdf5.File
	datasets map[string]*hdf5.Dataset
	steps    int
	rows     int
	cols     int
	time     []float64
}

//Open opens the container in filename for reading.
func Open(filename string) (*Reader, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "h5: can't open %s", filename)
	}
	R := &Reader{f: f, datasets: make(map[string]*hdf5.Dataset)}
	f.Walk(func(path string, obj hdf5.Object) {
		if ds, ok := obj.(*hdf5.Dataset); ok {
			R.datasets[path] = ds
		}
	})
	shape, err := R.raw("/shape")
	if err != nil || len(shape) != 3 {
		f.Close()
		return nil, errors.Newf("h5: %s has no valid /shape", filename)
	}
	R.steps, R.rows, R.cols = int(shape[0]), int(shape[1]), int(shape[2])
	R.time, err = R.raw("/time")
	if err != nil {
		f.Close()
		return nil, err
	}
	return R, nil
}

//Close closes the underlying file.
func (R *Reader) Close() error {
	return R.f.Close()
}

//Shape returns the number of steps and the rows and columns of the node grid.
//Cell quantities have one row and one column less.
func (R *Reader) Shape() (steps, rows, cols int) {
	return R.steps, R.rows, R.cols
}

//Steps returns the number of time steps.
func (R *Reader) Steps() int {
	return R.steps
}

//Time returns the time of each step.
func (R *Reader) Time() []float64 {
	return R.time
}

//Attribute returns the attribute name of the /time dataset.
func (R *Reader) Attribute(name string) (interface{}, error) {
	ds, ok := R.datasets["/time"]
	if !ok {
		return nil, errors.New("h5: no /time dataset")
	}
	return ds.ReadAttribute(name)
}

func (R *Reader) raw(path string) ([]float64, error) {
	ds, ok := R.datasets[path]
	if !ok {
		return nil, errors.Newf("h5: no dataset %s", path)
	}
	v, err := ds.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "h5: can't read %s", path)
	}
	return v, nil
}

//Read returns quantity field at step. Cell quantities come as a (rows-1) x (cols-1)
//matrix. X and Y come negated on the rows x cols node grid, and a vector quantity
//as a (rows*cols) x 2 matrix. "targ" returns the material map, for any step.
func (R *Reader) Read(field string, step int) (*mat.Dense, error) {
	if step < 0 || step >= R.steps {
		return nil, errors.Newf("h5: step %d out of range [0, %d)", step, R.steps)
	}
	path := FramePath(field, step)
	if field == "targ" {
		path = "/targ"
	}
	v, err := R.raw(path)
	if err != nil {
		return nil, err
	}
	switch {
	case field == "X" || field == "Y":
		floats.Scale(-1, v)
		return mat.NewDense(R.rows, R.cols, v), nil
	case len(v) == 2*R.rows*R.cols:
		return mat.NewDense(R.rows*R.cols, 2, v), nil
	case len(v) == (R.rows-1)*(R.cols-1):
		return mat.NewDense(R.rows-1, R.cols-1, v), nil
	}
	return nil, errors.Newf("h5: dataset %s has %d values, which fit no grid", path, len(v))
}

//ReadXY returns the node coordinates at step in μm, with the axes swapped and
//negated, so the grid can be plotted along a FLASH one.
func (R *Reader) ReadXY(step int) (x, y *mat.Dense, err error) {
	X, err := R.Read("X", step)
	if err != nil {
		return nil, nil, err
	}
	Y, err := R.Read("Y", step)
	if err != nil {
		return nil, nil, err
	}
	//Read already negated them.
	X.Scale(1e4, X)
	Y.Scale(1e4, Y)
	return Y, X, nil
}
