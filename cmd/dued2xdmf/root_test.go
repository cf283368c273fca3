/*
 * root_test.go, part of dued.
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

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/rmera/dued"
	"github.com/rmera/dued/h5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nvar = 21

//simFolder writes a DUED run with n frames of a rows x cols grid.
func simFolder(Te *testing.T, n, rows, cols int) string {
	Te.Helper()
	folder := filepath.Join(Te.TempDir(), "shot7")
	gpl := filepath.Join(folder, dued.FrameDir)
	require.NoError(Te, os.MkdirAll(gpl, 0o755))
	for s := 1; s <= n; s++ {
		var b strings.Builder
		fmt.Fprintf(&b, "# frm  %d %d %d 0.0\n", s, rows, cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				for v := 0; v < nvar; v++ {
					val := float64(100*v+10*i+j) + 0.25
					if v == nvar-1 {
						val = float64(s) * 1.5
					}
					fmt.Fprintf(&b, " %g", val)
				}
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
		}
		f, err := os.Create(filepath.Join(gpl, fmt.Sprintf("frm%d.gpl.gz", s)))
		require.NoError(Te, err)
		w := gzip.NewWriter(f)
		_, err = w.Write([]byte(b.String()))
		require.NoError(Te, err)
		require.NoError(Te, w.Close())
		require.NoError(Te, f.Close())
	}
	return folder
}

//execute runs the command with args and returns its error and output.
func execute(args ...string) (string, error) {
	var out, errb bytes.Buffer
	cmd := newRootCmd(&out, &errb)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String() + errb.String(), err
}

func TestNoArgs(Te *testing.T) {
	out, err := execute()
	require.ErrorIs(Te, err, errNoFolder)
	assert.Contains(Te, out, "Usage:")
}

func TestVersion(Te *testing.T) {
	out, err := execute("--version")
	require.NoError(Te, err)
	assert.Contains(Te, out, version)
}

func TestConvert(Te *testing.T) {
	folder := simFolder(Te, 4, 6, 5)
	base := filepath.Join(Te.TempDir(), "shot7")
	_, err := execute("-n", "-u", "cgs", "--plot", "-o", base, folder)
	require.NoError(Te, err)
	for _, ext := range []string{".h5", ".xdmf", "_time.png"} {
		assert.FileExists(Te, base+ext)
	}

	R, err := h5.Open(base + ".h5")
	require.NoError(Te, err)
	defer R.Close()
	steps, rows, cols := R.Shape()
	assert.Equal(Te, []int{4, 4, 3}, []int{steps, rows, cols})
	assert.InDeltaSlice(Te, []float64{1.5e-9, 3e-9, 4.5e-9, 6e-9}, R.Time(), 1e-20)
	units, err := R.Attribute("units")
	require.NoError(Te, err)
	assert.Equal(Te, "cgs", units)

	x, err := os.ReadFile(base + ".xdmf")
	require.NoError(Te, err)
	assert.Contains(Te, string(x), "shot7.h5:/dens/frame_0003")
}

func TestConvertEnv(Te *testing.T) {
	folder := simFolder(Te, 2, 4, 4)
	base := filepath.Join(Te.TempDir(), "raw")
	Te.Setenv("DUED_NO_TRIM", "true")
	Te.Setenv("DUED_WORKERS", "2")
	_, err := execute("-o", base, folder)
	require.NoError(Te, err)
	R, err := h5.Open(base + ".h5")
	require.NoError(Te, err)
	defer R.Close()
	_, rows, cols := R.Shape()
	assert.Equal(Te, []int{4, 4}, []int{rows, cols})
}

//A run that fails leaves no output behind.
func TestConvertFailures(Te *testing.T) {
	dir := Te.TempDir()
	base := filepath.Join(dir, "out")

	_, err := execute("-o", base, dir)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, errLogged))
	var pe dued.PathNotFoundError
	assert.True(Te, errors.As(err, &pe))

	folder := simFolder(Te, 2, 4, 4)
	_, err = execute("-u", "si", "-o", base, folder)
	var ue dued.UnitModeError
	assert.True(Te, errors.As(err, &ue))

	_, err = execute("--log-level", "loud", "-o", base, folder)
	require.Error(Te, err)

	entries, err := os.ReadDir(dir)
	require.NoError(Te, err)
	assert.Empty(Te, entries)
}

func TestConfigFile(Te *testing.T) {
	folder := simFolder(Te, 2, 5, 5)
	dir := Te.TempDir()
	base := filepath.Join(dir, "fromcfg")
	cfg := filepath.Join(dir, "dued.yaml")
	require.NoError(Te, os.WriteFile(cfg, []byte("units: cgs\noutput: "+base+"\n"), 0o644))
	_, err := execute("--config", cfg, folder)
	require.NoError(Te, err)
	R, err := h5.Open(base + ".h5")
	require.NoError(Te, err)
	defer R.Close()
	units, err := R.Attribute("units")
	require.NoError(Te, err)
	assert.Equal(Te, "cgs", units)
}
