/*
 * sim_test.go, part of dued.
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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

//simFolder creates a simulation folder with n unpadded frames (frm1 ... frmN).
func simFolder(Te *testing.T, n, rows, cols, nvar int) string {
	Te.Helper()
	folder := filepath.Join(Te.TempDir(), "run42")
	gpl := filepath.Join(folder, FrameDir)
	if err := os.MkdirAll(gpl, 0o755); err != nil {
		Te.Fatal(err)
	}
	for s := 1; s <= n; s++ {
		writeGz(Te, gpl, fmt.Sprintf("frm%d.gpl.gz", s), frameText(s, rows, cols, nvar, stepValue(s)))
	}
	return folder
}

func TestOpen(Te *testing.T) {
	folder := simFolder(Te, 10, 5, 5, 7)
	if err := os.WriteFile(filepath.Join(folder, NamelistFile), []byte("&dued\n nstep=10\n/\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	for _, parallel := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Parallel = parallel
		opts.Workers = 3
		S, err := Open(context.Background(), folder, opts)
		if err != nil {
			Te.Fatal(err)
		}
		if S.Name != "run42" {
			Te.Errorf("got name %s, want run42", S.Name)
		}
		if S.Shape != (Shape{10, 5, 5}) {
			Te.Errorf("got shape %v", S.Shape)
		}
		steps, rows, cols, nvar := S.Data.Dims()
		if steps != 10 || rows != 3 || cols != 3 || nvar != 7 {
			Te.Fatalf("got (%d,%d,%d,%d), want (10,3,3,7)", steps, rows, cols, nvar)
		}
		//frm10 must come last, not after frm1.
		for t := 0; t < steps; t++ {
			if want := stepValue(t+1)(1, 1, 6); S.Time[t] != want {
				Te.Errorf("parallel=%v: time of step %d = %g, want %g", parallel, t, S.Time[t], want)
			}
		}
		if S.EndTime() != S.Time[9] {
			Te.Errorf("end time %g, want %g", S.EndTime(), S.Time[9])
		}
		m := S.Metadata(time.Unix(0, 0))
		if m.SimPath != folder || m.Namelist == "" || m.Units != HEDP {
			Te.Errorf("unexpected metadata %+v", m)
		}
	}
}

func TestOpenMissingFrameDir(Te *testing.T) {
	folder := Te.TempDir()
	_, err := Open(context.Background(), folder, DefaultOptions())
	var pe PathNotFoundError
	if !errors.As(err, &pe) {
		Te.Fatalf("want a PathNotFoundError, got %v", err)
	}
	if pe.Path != filepath.Join(folder, FrameDir) {
		Te.Errorf("error names %s", pe.Path)
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		Te.Fatal(err)
	}
	if len(entries) != 0 {
		Te.Errorf("files were created: %v", entries)
	}
}

//The units are checked before anything is read.
func TestOpenBadUnits(Te *testing.T) {
	opts := DefaultOptions()
	opts.Units = "si"
	_, err := Open(context.Background(), "/does/not/exist", opts)
	var ue UnitModeError
	if !errors.As(err, &ue) {
		Te.Errorf("want an UnitModeError, got %v", err)
	}
}

func TestParseUnits(Te *testing.T) {
	for in, want := range map[string]Units{"hedp": HEDP, "CGS": CGS, " cgs ": CGS} {
		u, err := ParseUnits(in)
		if err != nil || u != want {
			Te.Errorf("ParseUnits(%q) = %q, %v", in, u, err)
		}
	}
	if _, err := ParseUnits("mks"); err == nil {
		Te.Errorf("mks should not be accepted")
	}
	opts := Options{FlashComp: true}
	if err := opts.Validate(); err != nil || opts.Units != HEDP || opts.Variables == nil {
		Te.Errorf("FlashComp should leave the default units: %+v, %v", opts, err)
	}
}
