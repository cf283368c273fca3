/*
 * shape.go, part of dued.
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
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// HeaderPrefix is the number of bytes at the beginning of the first line of
// a frame that come before the numeric header fields.
const HeaderPrefix = 7

// FramePattern matches the names of the frame files. The first group is the frame index.
var FramePattern = regexp.MustCompile(`^frm(\d+)\.gpl(\.gz|\.zst)?$`)

// Shape is the geometry of a set of frames.
type Shape struct {
	Frames int
	Rows   int
	Cols   int
}

// Points returns the number of grid points in one frame.
func (S Shape) Points() int {
	return S.Rows * S.Cols
}

func (S Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", S.Frames, S.Rows, S.Cols)
}

// FrameIndex returns the index embedded in a frame file name.
func FrameIndex(name string) (int, bool) {
	m := FramePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, false
	}
	i, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return i, true
}

// SortFrames sorts frame paths by their embedded index, so frm10 goes after frm9.
// Paths without an index go last, in lexicographic order.
func SortFrames(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		ia, oka := FrameIndex(a)
		ib, okb := FrameIndex(b)
		switch {
		case oka && okb && ia != ib:
			if ia < ib {
				return -1
			}
			return 1
		case oka && !okb:
			return -1
		case !oka && okb:
			return 1
		}
		return strings.Compare(a, b)
	})
}

// ListFrames returns the paths of the frame files in dir, sorted by frame index.
func ListFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newPathNotFoundError(dir, "ListFrames")
		}
		return nil, errors.Wrapf(err, "dued: can't list %s", dir)
	}
	ret := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !FramePattern.MatchString(e.Name()) {
			continue
		}
		ret = append(ret, filepath.Join(dir, e.Name()))
	}
	SortFrames(ret)
	return ret, nil
}

// InferShape returns the shape of the frames in paths, which must be already
// sorted. Only the first line of the first frame is read: after the first
// HeaderPrefix bytes, its second and third numbers are the rows and columns of the grid.
func InferShape(paths []string) (Shape, error) {
	if len(paths) == 0 {
		return Shape{}, newShapeInferenceError("", "no frame files", "InferShape")
	}
	fin, err := OpenFrame(paths[0])
	if err != nil {
		return Shape{}, err
	}
	defer fin.Close()
	line, err := bufio.NewReader(fin).ReadString('\n')
	if err != nil && line == "" {
		return Shape{}, newShapeInferenceError(paths[0], "can't read header: "+err.Error(), "InferShape")
	}
	rows, cols, err := parseHeader(line)
	if err != nil {
		return Shape{}, newShapeInferenceError(paths[0], err.Error(), "InferShape")
	}
	return Shape{Frames: len(paths), Rows: rows, Cols: cols}, nil
}

//parseHeader reads numbers from the header line until the first field that
//is not one, and returns the second and third as integers.
func parseHeader(line string) (int, int, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) <= HeaderPrefix {
		return 0, 0, errors.Newf("header line %q too short", line)
	}
	nums := make([]float64, 0, 3)
	for _, f := range strings.Fields(line[HeaderPrefix:]) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			break
		}
		nums = append(nums, v)
	}
	if len(nums) < 3 {
		return 0, 0, errors.Newf("header %q has %d numeric fields, need at least 3", line, len(nums))
	}
	rows, cols := int(nums[1]), int(nums[2])
	if rows <= 0 || cols <= 0 || float64(rows) != nums[1] || float64(cols) != nums[2] {
		return 0, 0, errors.Newf("header %q gives an invalid grid %gx%g", line, nums[1], nums[2])
	}
	return rows, cols, nil
}
