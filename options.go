/*
 * options.go, part of dued.
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
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Units selects the unit system of the assembled data.
type Units string

const (
	//HEDP leaves the values as DUED writes them.
	HEDP Units = "hedp"
	//CGS scales positions to μm and times to ns.
	CGS Units = "cgs"
)

const (
	//SpaceScale multiplies the position columns under CGS.
	SpaceScale = 1e-4
	//TimeScale multiplies the time column under CGS.
	TimeScale = 1e-9
)

// DefaultFrameTimeout is the time allowed to read and parse a single frame.
const DefaultFrameTimeout = 5 * time.Minute

// ParseUnits returns the Units named by s (case-insensitive), or
// an UnitModeError.
func ParseUnits(s string) (Units, error) {
	switch u := Units(strings.ToLower(strings.TrimSpace(s))); u {
	case HEDP, CGS:
		return u, nil
	}
	return "", newUnitModeError(s, "ParseUnits")
}

// Columns gives the variable columns (0-based) that the assembler transforms.
// A negative index counts from the end, so -1 is the last column.
type Columns struct {
	X    int
	Y    int
	VX   int
	VY   int
	Time int
}

// DefaultColumns are the DUED gnuplot columns.
func DefaultColumns() Columns {
	return Columns{X: 2, Y: 3, VX: 4, VY: 5, Time: -1}
}

// Resolve returns the columns with the negative indexes turned into
// absolute ones, for frames with nvar variables.
func (C Columns) Resolve(nvar int) Columns {
	return Columns{
		X:    resolve(C.X, nvar),
		Y:    resolve(C.Y, nvar),
		VX:   resolve(C.VX, nvar),
		VY:   resolve(C.VY, nvar),
		Time: resolve(C.Time, nvar),
	}
}

func resolve(col, nvar int) int {
	if col < 0 {
		return nvar + col
	}
	return col
}

// Options controls how a simulation folder is ingested and assembled.
type Options struct {
	Units Units
	//FlashComp swaps and negates the x/y pairs so the grid can be compared
	//with a FLASH simulation. Units are still applied as selected.
	FlashComp bool
	//TrimGhosts drops the first and last row and column of each frame.
	TrimGhosts bool
	//Parallel parses the frames on a worker pool.
	Parallel bool
	//Workers is the pool size. 0 or less means runtime.NumCPU().
	Workers int
	//FrameTimeout bounds the reading of each frame. 0 disables it.
	FrameTimeout time.Duration
	Columns      Columns
	Variables    []Variable
	Logger       zerolog.Logger
}

// DefaultOptions returns the usual conversion options: HEDP units,
// ghost trimming, parallel parsing.
func DefaultOptions() Options {
	return Options{
		Units:        HEDP,
		TrimGhosts:   true,
		Parallel:     true,
		FrameTimeout: DefaultFrameTimeout,
		Columns:      DefaultColumns(),
		Variables:    DefaultVariables(),
		Logger:       zerolog.Nop(),
	}
}

// Validate checks the options and fills in the derived values.
// It does not touch the filesystem, so it can run before any I/O.
func (O *Options) Validate() error {
	if O.Units == "" {
		O.Units = HEDP
	}
	u, err := ParseUnits(string(O.Units))
	if err != nil {
		return errDecorate(err, "Validate")
	}
	O.Units = u
	if O.Variables == nil {
		O.Variables = DefaultVariables()
	}
	if O.FrameTimeout < 0 {
		O.FrameTimeout = 0
	}
	return nil
}
