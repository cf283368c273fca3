/*
 * helpers_test.go, part of dued.
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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

//frameText returns a gnuplot frame with a DUED-like header, whose value for
//variable v at grid point (i, j) is f(i, j, v). Rows are separated by a blank
//line, like gnuplot expects.
func frameText(step, rows, cols, nvar int, f func(i, j, v int) float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# frm  %d %d %d 0.0\n", step, rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			for v := 0; v < nvar; v++ {
				if v > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(strconv.FormatFloat(f(i, j, v), 'g', -1, 64))
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//writeGz writes txt gzipped to dir/name and returns the path.
func writeGz(Te *testing.T, dir, name, txt string) string {
	Te.Helper()
	p := filepath.Join(dir, name)
	fout, err := os.Create(p)
	if err != nil {
		Te.Fatal(err)
	}
	w := gzip.NewWriter(fout)
	if _, err := w.Write([]byte(txt)); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := fout.Close(); err != nil {
		Te.Fatal(err)
	}
	return p
}

//stepValue is the test field: it encodes the step, grid point and variable.
func stepValue(step int) func(i, j, v int) float64 {
	return func(i, j, v int) float64 {
		return float64(1000*step+100*v+10*i+j) + 0.5
	}
}

//writeFrames writes n frames named frm%04d.gpl.gz, numbered from 1, in dir.
func writeFrames(Te *testing.T, dir string, n, rows, cols, nvar int) []string {
	Te.Helper()
	paths := make([]string, 0, n)
	for s := 1; s <= n; s++ {
		name := fmt.Sprintf("frm%04d.gpl.gz", s)
		paths = append(paths, writeGz(Te, dir, name, frameText(s, rows, cols, nvar, stepValue(s))))
	}
	return paths
}
