/*
 * frame.go, part of dued.
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
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

// Frame is the content of one gnuplot file: a rows x cols grid with nvar values
// per grid point. The embedded matrix has one row per grid point, in row-major
// grid order, and one column per variable.
type Frame struct {
	*mat.Dense
	rows int
	cols int
}

// NewFrame returns a rows x cols frame with nvar variables, backed by data
// (which is not copied). If data is nil, a zeroed frame is allocated.
// It panics if data has not rows*cols*nvar elements.
func NewFrame(rows, cols, nvar int, data []float64) *Frame {
	return &Frame{Dense: mat.NewDense(rows*cols, nvar, data), rows: rows, cols: cols}
}

// GridDims returns the number of rows and columns of the grid.
func (F *Frame) GridDims() (int, int) {
	return F.rows, F.cols
}

// NVar returns the number of variables stored per grid point.
func (F *Frame) NVar() int {
	_, c := F.Dims()
	return c
}

// Point returns the matrix row that holds the grid point (i, j).
func (F *Frame) Point(i, j int) int {
	return i*F.cols + j
}

// At3 returns variable v at grid point (i, j).
func (F *Frame) At3(i, j, v int) float64 {
	return F.At(F.Point(i, j), v)
}

// Set3 sets variable v at grid point (i, j).
func (F *Frame) Set3(i, j, v int, val float64) {
	F.Set(F.Point(i, j), v, val)
}

// Field returns a new slice with variable v over the grid points (i, j) with
// i < rows and j < cols, in row-major order.
func (F *Frame) Field(v, rows, cols int) []float64 {
	ret := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			ret = append(ret, F.At3(i, j, v))
		}
	}
	return ret
}

// Trim returns a new frame without the first and last rows and columns of the grid.
func (F *Frame) Trim() *Frame {
	rows, cols := F.rows-2, F.cols-2
	nvar := F.NVar()
	T := NewFrame(rows, cols, nvar, nil)
	for i := 0; i < rows; i++ {
		//rows i+1, j in [1, cols] of F are contiguous grid points.
		src := F.Slice(F.Point(i+1, 1), F.Point(i+1, cols)+1, 0, nvar)
		dst := T.Slice(T.Point(i, 0), T.Point(i, cols-1)+1, 0, nvar).(*mat.Dense)
		dst.Copy(src)
	}
	return T
}

//ctxReader fails reads once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (C ctxReader) Read(p []byte) (int, error) {
	if err := C.ctx.Err(); err != nil {
		return 0, err
	}
	return C.r.Read(p)
}

//frameFile closes the decompressor and then the underlying file.
type frameFile struct {
	io.Reader
	closers []io.Closer
}

func (F *frameFile) Close() error {
	var err error
	for _, c := range F.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenFrame opens a frame file for reading, decompressing it according to its
// name: gzip for .gz, z-standard for .zst, nothing otherwise.
func OpenFrame(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "dued: can't open frame %s", name)
	}
	buf := bufio.NewReader(f)
	switch {
	case strings.HasSuffix(name, ".gz"):
		r, err := gzip.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "dued: can't decompress frame %s", name)
		}
		return &frameFile{r, []io.Closer{r, f}}, nil
	case strings.HasSuffix(name, ".zst"):
		r, err := zstd.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "dued: can't decompress frame %s", name)
		}
		rc := r.IOReadCloser()
		return &frameFile{rc, []io.Closer{rc, f}}, nil
	default:
		return &frameFile{buf, []io.Closer{f}}, nil
	}
}

// ParseFrame reads the frame file name and returns its content as a
// shape.Rows x shape.Cols frame. The number of variables is whatever makes
// the values fit the grid. Reading stops with ctx's error if ctx is done.
func ParseFrame(ctx context.Context, name string, shape Shape) (*Frame, error) {
	fin, err := OpenFrame(name)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	F, err := DecodeFrame(ctxReader{ctx, fin}, name, shape)
	if err != nil {
		return nil, errDecorate(err, "ParseFrame")
	}
	return F, nil
}

// DecodeFrame parses an uncompressed gnuplot frame from r. name is only
// used in errors. Broken exponents are repaired first (see RepairExponents),
// then '#' comments and blank lines are skipped, and every other
// whitespace-separated token must be a number.
func DecodeFrame(r io.Reader, name string, shape Shape) (*Frame, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "dued: can't read frame %s", name)
	}
	txt := RepairExponents(string(raw))
	points := shape.Rows * shape.Cols
	data := make([]float64, 0, len(txt)/12+1)
	lineno := 0
	for len(txt) > 0 {
		var line string
		line, txt, _ = strings.Cut(txt, "\n")
		lineno++
		if c := strings.IndexByte(line, '#'); c >= 0 {
			line = line[:c]
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, newParseError(name, lineno, tok, "DecodeFrame")
			}
			data = append(data, v)
		}
	}
	if points <= 0 || len(data) == 0 || len(data)%points != 0 {
		return nil, newShapeMismatchError(name, len(data), points, "DecodeFrame")
	}
	return NewFrame(shape.Rows, shape.Cols, len(data)/points, data), nil
}
