/*
 * pool.go, part of dued.
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
	"runtime"
	"sync"
)

// Pool is a fixed set of goroutines that run submitted tasks.
// A Pool is meant to be created once per conversion and reused for every
// batch of frames. It must be closed when no longer needed.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	size   int
}

// NewPool starts a pool with n workers. If n < 1, runtime.NumCPU() workers are used.
func NewPool(n int) *Pool {
	if n < 1 {
		n = runtime.NumCPU()
	}
	P := &Pool{tasks: make(chan func(), n), size: n}
	P.wg.Add(n)
	for i := 0; i < n; i++ {
		go P.work()
	}
	return P
}

func (P *Pool) work() {
	defer P.wg.Done()
	for t := range P.tasks {
		t()
	}
}

// Size returns the number of workers in the pool.
func (P *Pool) Size() int {
	return P.size
}

// Submit queues task to be run by a worker. It blocks while the queue is full,
// and returns ErrPoolClosed if the pool has been closed.
func (P *Pool) Submit(task func()) error {
	P.mu.RLock()
	defer P.mu.RUnlock()
	if P.closed {
		return ErrPoolClosed
	}
	P.tasks <- task
	return nil
}

// Close stops accepting tasks, lets the queued ones finish and waits for the
// workers to exit. It is safe to call Close more than once.
func (P *Pool) Close() {
	P.mu.Lock()
	if P.closed {
		P.mu.Unlock()
		return
	}
	P.closed = true
	close(P.tasks)
	P.mu.Unlock()
	P.wg.Wait()
}
