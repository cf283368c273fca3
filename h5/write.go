/*
 * write.go, part of dued.
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

//Package h5 stores an assembled DUED simulation in an HDF5 container, and reads it back.
//
//The layout is the one VisIt expects from the XDMF description written by
//package xdmf: one group per quantity (X, Y, Z, vel and one per scalar
//variable) holding one dataset per time step, named frame_0000, frame_0001...
//Node quantities (X, Y, Z, vel) cover the whole grid, cell quantities drop
//the last row and column. The root also holds the time series (/time), the
//grid shape (/shape) and a material map (/targ).
package h5

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rmera/dued"
	"github.com/scigolib/hdf5"
)

// Source is an assembled simulation, steps x rows x cols x nvar.
type Source interface {
	Dims() (steps, rows, cols, nvar int)
	At(t, i, j, v int) float64
}

// Layout tells which columns of the Source go to which group.
type Layout struct {
	Variables []dued.Variable
	Columns   dued.Columns
	//Compression is the gzip level (1-9) for the frame datasets, 0 disables it.
	Compression int
}

// DefaultLayout returns the DUED layout, without compression.
func DefaultLayout() Layout {
	return Layout{Variables: dued.DefaultVariables(), Columns: dued.DefaultColumns()}
}

// FrameName returns the name of the dataset of step t.
func FrameName(t int) string {
	return fmt.Sprintf("frame_%04d", t)
}

// FramePath returns the path of the dataset of step t in group key.
func FramePath(key string, t int) string {
	return "/" + key + "/" + FrameName(t)
}

// Write stores data and its time series in a new HDF5 file, replacing any
// existing one. If anything fails, the partial file is removed.
func Write(filename string, data Source, times []float64, l Layout, meta dued.Metadata) (err error) {
	steps, rows, cols, nvar := data.Dims()
	if steps == 0 || rows < 2 || cols < 2 {
		return errors.Newf("h5: can't store a %dx%dx%d simulation", steps, rows, cols)
	}
	if len(times) != steps {
		return errors.Newf("h5: %d times given for %d steps", len(times), steps)
	}
	c := l.Columns.Resolve(nvar)
	for _, v := range l.Variables {
		if v.Column < 0 || v.Column+v.Components() > nvar {
			return errors.Newf("h5: variable %s needs column %d, data has %d", v.Key, v.Column+v.Components()-1, nvar)
		}
	}
	fw, err := hdf5.CreateForWrite(filename, hdf5.CreateTruncate)
	if err != nil {
		return errors.Wrapf(err, "h5: can't create %s", filename)
	}
	w := &writer{fw: fw, data: data, rows: rows, cols: cols, level: l.Compression}
	defer func() {
		cerr := fw.Close()
		if err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "h5: can't close %s", filename)
		}
		if err != nil {
			os.Remove(filename)
		}
	}()
	nodes := []struct {
		key string
		col int
	}{{"X", c.X}, {"Y", c.Y}, {"Z", -1}}
	for _, n := range nodes {
		if err = w.group(n.key); err != nil {
			return err
		}
		for t := 0; t < steps; t++ {
			if err = w.frame(n.key, t, w.field(t, n.col, rows, cols), rows, cols); err != nil {
				return err
			}
		}
	}
	for _, v := range l.Variables {
		if err = w.group(v.Key); err != nil {
			return err
		}
		for t := 0; t < steps; t++ {
			if v.Vector {
				err = w.frame(v.Key, t, w.vector(t, v.Column), rows, cols, 2)
			} else {
				err = w.frame(v.Key, t, w.field(t, v.Column, rows-1, cols-1), rows-1, cols-1)
			}
			if err != nil {
				return err
			}
		}
	}
	if dens, ok := dued.LookupVariable(l.Variables, "dens"); ok {
		if err = w.dataset("/targ", Targ(w.field(0, dens.Column, rows-1, cols-1)), rows-1, cols-1); err != nil {
			return err
		}
	}
	if err = w.shape(steps, rows, cols); err != nil {
		return err
	}
	return w.series(times, meta)
}

// Targ returns, for each value of dens, the index of that value among the
// sorted distinct values of dens. The result labels the materials of a target
// from its initial density map.
func Targ(dens []float64) []float64 {
	uniq := slices.Clone(dens)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	ret := make([]float64, len(dens))
	for i, d := range dens {
		idx, _ := slices.BinarySearch(uniq, d)
		ret[i] = float64(idx)
	}
	return ret
}

type writer struct {
	fw    *hdf5.FileWriter
	data  Source
	rows  int
	cols  int
	level int
}

func (w *writer) group(key string) error {
	if err := w.fw.CreateGroup("/" + key); err != nil {
		return errors.Wrapf(err, "h5: can't create group /%s", key)
	}
	return nil
}

//field returns column col at the grid points (i, j), i < rows, j < cols, of step t.
//A negative column gives zeros.
func (w *writer) field(t, col, rows, cols int) []float64 {
	ret := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if col < 0 {
				ret = append(ret, 0)
				continue
			}
			ret = append(ret, w.data.At(t, i, j, col))
		}
	}
	return ret
}

//vector returns columns col and col+1 of step t, interleaved.
func (w *writer) vector(t, col int) []float64 {
	ret := make([]float64, 0, 2*w.rows*w.cols)
	for i := 0; i < w.rows; i++ {
		for j := 0; j < w.cols; j++ {
			ret = append(ret, w.data.At(t, i, j, col), w.data.At(t, i, j, col+1))
		}
	}
	return ret
}

func (w *writer) frame(key string, t int, vals []float64, dims ...int) error {
	return w.dataset(FramePath(key, t), vals, dims...)
}

func (w *writer) dataset(path string, vals []float64, dims ...int) error {
	udims := make([]uint64, len(dims))
	for i, d := range dims {
		udims[i] = uint64(d)
	}
	var opts []hdf5.DatasetOption
	if w.level > 0 {
		opts = append(opts, hdf5.WithChunkDims(udims), hdf5.WithGZIPCompression(w.level))
	}
	ds, err := w.fw.CreateDataset(path, hdf5.Float64, udims, opts...)
	if err != nil {
		return errors.Wrapf(err, "h5: can't create dataset %s", path)
	}
	if err := ds.Write(vals); err != nil {
		return errors.Wrapf(err, "h5: can't write dataset %s", path)
	}
	return ds.Close()
}

func (w *writer) shape(steps, rows, cols int) error {
	ds, err := w.fw.CreateDataset("/shape", hdf5.Int64, []uint64{3})
	if err != nil {
		return errors.Wrap(err, "h5: can't create dataset /shape")
	}
	if err := ds.Write([]int64{int64(steps), int64(rows), int64(cols)}); err != nil {
		return errors.Wrap(err, "h5: can't write dataset /shape")
	}
	return ds.Close()
}

//series writes the time series, with the run metadata as attributes.
func (w *writer) series(times []float64, meta dued.Metadata) error {
	ds, err := w.fw.CreateDataset("/time", hdf5.Float64, []uint64{uint64(len(times))})
	if err != nil {
		return errors.Wrap(err, "h5: can't create dataset /time")
	}
	if err := ds.Write(times); err != nil {
		return errors.Wrap(err, "h5: can't write dataset /time")
	}
	attrs := []struct{ name, value string }{
		{"sim_path", meta.SimPath},
		{"hostname", meta.Hostname},
		{"user", meta.User},
		{"date", meta.Date.Format(time.RFC3339)},
		{"units", string(meta.Units)},
		{"dued_namelist", meta.Namelist},
	}
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		if err := ds.WriteAttribute(a.name, a.value); err != nil {
			return errors.Wrapf(err, "h5: can't write attribute %s", a.name)
		}
	}
	return ds.Close()
}
