/*
 * ingest.go, part of dued.
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
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// Ingest parses the frame files in paths, which must be sorted already (see SortFrames).
// The i-th returned frame always corresponds to paths[i]. If pool is nil the
// frames are parsed one after the other, otherwise they are parsed concurrently
// on the pool; the results are the same. Each frame gets at most timeout to be
// read (0 means no limit). The first frame that fails aborts the whole batch,
// and its error is returned.
func Ingest(ctx context.Context, pool *Pool, paths []string, shape Shape, timeout time.Duration) ([]*Frame, error) {
	frames := make([]*Frame, len(paths))
	if pool == nil {
		for i, p := range paths {
			F, err := parseOne(ctx, p, shape, timeout)
			if err != nil {
				return nil, errDecorate(err, "Ingest")
			}
			frames[i] = F
		}
		return frames, nil
	}
	bctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	var once sync.Once
	var first error
	fail := func(err error) {
		once.Do(func() {
			first = err
			cancel()
		})
	}
	for i, p := range paths {
		if bctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if bctx.Err() != nil {
				return
			}
			F, err := parseOne(bctx, p, shape, timeout)
			if err != nil {
				fail(err)
				return
			}
			frames[i] = F
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()
	if first != nil {
		return nil, errDecorate(first, "Ingest")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "dued: ingestion interrupted")
	}
	return frames, nil
}

//parseOne parses one frame on its own goroutine, so a read that blocks (a
//stalled mount, a FIFO with no writer) still ends when ctx or the timeout
//does. The blocked goroutine is left behind until the read returns.
func parseOne(ctx context.Context, path string, shape Shape, timeout time.Duration) (*Frame, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	type result struct {
		F   *Frame
		err error
	}
	done := make(chan result, 1)
	go func() {
		F, err := ParseFrame(ctx, path, shape)
		done <- result{F, err}
	}()
	select {
	case r := <-done:
		return r.F, r.err
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "dued: frame %s not read in time", path)
	}
}
