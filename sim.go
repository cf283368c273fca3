/*
 * sim.go, part of dued.
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
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	//FrameDir is where DUED writes its gnuplot frames, relative to the simulation folder.
	FrameDir = "out/gpl"
	//NamelistFile is the DUED input namelist, relative to the simulation folder.
	NamelistFile = "dued.nml"
)

//parseCost is the approximate time, in seconds, needed to parse one grid point.
const parseCost = 3e-5

// Sim is a parsed DUED simulation folder.
type Sim struct {
	Path     string //absolute path of the simulation folder
	DataPath string //absolute path of the frame directory
	Name     string //default name for the output files
	Shape    Shape  //shape of the frames as read, before trimming
	Data     *Data
	Time     []float64
	Options  Options
}

// Metadata describes a conversion run. It is stored along with the data.
type Metadata struct {
	SimPath  string
	Hostname string
	User     string
	Date     time.Time
	Units    Units
	Namelist string
}

// Open parses the simulation in folder. The options are validated before
// anything is read. If opts.Parallel is set, a worker pool is started for the
// parsing and closed before Open returns.
func Open(ctx context.Context, folder string, opts Options) (*Sim, error) {
	if err := opts.Validate(); err != nil {
		return nil, errDecorate(err, "Open")
	}
	log := opts.Logger
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, errors.Wrapf(err, "dued: bad simulation path %s", folder)
	}
	S := &Sim{Path: abs, DataPath: filepath.Join(abs, FrameDir), Name: filepath.Base(abs), Options: opts}
	if st, err := os.Stat(S.DataPath); err != nil || !st.IsDir() {
		return nil, newPathNotFoundError(S.DataPath, "Open")
	}
	paths, err := ListFrames(S.DataPath)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	S.Shape, err = InferShape(paths)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	log.Info().Stringer("shape", S.Shape).
		Float64("expected_s", float64(S.Shape.Frames*S.Shape.Points())*parseCost).
		Msg("Expected parsing time")
	var pool *Pool
	if opts.Parallel {
		pool = NewPool(opts.Workers)
		defer pool.Close()
		log.Debug().Int("workers", pool.Size()).Msg("Worker pool started")
	}
	frames, err := Ingest(ctx, pool, paths, S.Shape, opts.FrameTimeout)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	S.Data, S.Time, err = Assemble(frames, opts)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	log.Info().Float64("time", S.EndTime()).Int("frames", S.Data.Steps()).Msg("Parsed")
	return S, nil
}

// EndTime returns the largest simulation time of the run.
func (S *Sim) EndTime() float64 {
	if len(S.Time) == 0 {
		return 0
	}
	return floats.Max(S.Time)
}

// Namelist returns the content of the DUED namelist of the simulation, or
// an empty string if there is none.
func (S *Sim) Namelist() string {
	b, err := os.ReadFile(filepath.Join(S.Path, NamelistFile))
	if err != nil {
		S.Options.Logger.Warn().Err(err).Msg("No namelist found")
		return ""
	}
	return string(b)
}

// Metadata returns the description of the current run, for the given date.
func (S *Sim) Metadata(date time.Time) Metadata {
	m := Metadata{SimPath: S.Path, Date: date, Units: S.Options.Units, Namelist: S.Namelist()}
	m.Hostname, _ = os.Hostname()
	if u, err := user.Current(); err == nil {
		m.User = u.Username
	}
	return m
}
