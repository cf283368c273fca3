/*
 * errors.go, part of dued.
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
	"strings"

	"github.com/cockroachdb/errors"
)

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the name of a function in the calling stack (optionally "FunctionName: Extra info")
	//and returns the resulting slice. An empty string only returns the current slice.
	Decorate(string) []string
}

// FrameError is an Error tied to one input file.
type FrameError interface {
	Error
	FileName() string
	Critical() bool
}

//ErrPoolClosed is returned when work is submitted to a Pool after Close.
var ErrPoolClosed = errors.New("dued: worker pool is closed")

//errDecorate decorates err with the caller's name if err implements Error,
//and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//deco is embedded by all the error types of the package.
//It is a pointer so decorating a copy of the error decorates them all.
type deco struct {
	d *[]string
}

func (D deco) decorate(s string) []string {
	if D.d == nil {
		return nil
	}
	if s != "" {
		*D.d = append(*D.d, s)
	}
	return *D.d
}

func (D deco) trace() string {
	if D.d == nil || len(*D.d) == 0 {
		return ""
	}
	return " (" + strings.Join(*D.d, " <- ") + ")"
}

func newDeco(caller string) deco {
	d := []string{caller}
	return deco{&d}
}

// PathNotFoundError is returned when the frame directory of a simulation folder does not exist.
type PathNotFoundError struct {
	Path string
	deco
}

func newPathNotFoundError(path, caller string) PathNotFoundError {
	return PathNotFoundError{path, newDeco(caller)}
}

func (E PathNotFoundError) Error() string {
	return fmt.Sprintf("dued: path does not exist: %s%s", E.Path, E.trace())
}

//Decorate Adds new information to the error
func (E PathNotFoundError) Decorate(d string) []string { return E.decorate(d) }

func (E PathNotFoundError) FileName() string { return E.Path }

func (E PathNotFoundError) Critical() bool { return true }

// ShapeInferenceError means the grid geometry could not be read from the header of the first frame.
type ShapeInferenceError struct {
	File    string
	Message string
	deco
}

func newShapeInferenceError(file, msg, caller string) ShapeInferenceError {
	return ShapeInferenceError{file, msg, newDeco(caller)}
}

func (E ShapeInferenceError) Error() string {
	return fmt.Sprintf("dued: can't infer grid shape from %s: %s%s", E.File, E.Message, E.trace())
}

//Decorate Adds new information to the error
func (E ShapeInferenceError) Decorate(d string) []string { return E.decorate(d) }

func (E ShapeInferenceError) FileName() string { return E.File }

func (E ShapeInferenceError) Critical() bool { return true }

// ShapeMismatchError means the values in a frame do not fill the expected grid.
// For a frame, Values is the number of numeric tokens read and Points is Rows*Cols.
type ShapeMismatchError struct {
	File   string
	Values int
	Points int
	deco
}

func newShapeMismatchError(file string, values, points int, caller string) ShapeMismatchError {
	return ShapeMismatchError{file, values, points, newDeco(caller)}
}

func (E ShapeMismatchError) Error() string {
	return fmt.Sprintf("dued: frame %s holds %d values, which do not fill a grid of %d points%s", E.File, E.Values, E.Points, E.trace())
}

//Decorate Adds new information to the error
func (E ShapeMismatchError) Decorate(d string) []string { return E.decorate(d) }

func (E ShapeMismatchError) FileName() string { return E.File }

func (E ShapeMismatchError) Critical() bool { return true }

// ParseError is returned when a token of a frame is not a number, even after repair.
type ParseError struct {
	File  string
	Line  int
	Token string
	deco
}

func newParseError(file string, line int, token, caller string) ParseError {
	return ParseError{file, line, token, newDeco(caller)}
}

func (E ParseError) Error() string {
	return fmt.Sprintf("dued: frame %s line %d: can't parse %q as a number%s", E.File, E.Line, E.Token, E.trace())
}

//Decorate Adds new information to the error
func (E ParseError) Decorate(d string) []string { return E.decorate(d) }

func (E ParseError) FileName() string { return E.File }

func (E ParseError) Critical() bool { return true }

// UnitModeError is returned for an unknown unit system selector.
type UnitModeError struct {
	Units string
	deco
}

func newUnitModeError(units, caller string) UnitModeError {
	return UnitModeError{units, newDeco(caller)}
}

func (E UnitModeError) Error() string {
	return fmt.Sprintf("dued: units should be one of %q or %q, got %q%s", HEDP, CGS, E.Units, E.trace())
}

//Decorate Adds new information to the error
func (E UnitModeError) Decorate(d string) []string { return E.decorate(d) }

func (E UnitModeError) Critical() bool { return true }
