// Copyright 2026 The go-lanes Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs independent pieces of work on a fixed set of
// goroutines and combines their results in input order.
//
// The vector unit itself is single-threaded; the pool is for callers that
// want to run many independent kernel invocations at once, for example one
// lanes.Unit per width in a sweep. Each piece of work must own its Unit.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	sums := workerpool.Map(pool, len(widths), func(i int) float32 {
//	    return kernels.ArraySumVector(lanes.MustNew(widths[i]), data)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent set of worker goroutines. Workers are spawned once
// by New and reused until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers goroutines.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool after pending work completes.
// Calling Close multiple times is safe. A closed pool runs work inline.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. Blocks until all ranges are done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- workItem{fn: func() { fn(start, end) }, barrier: &wg}
	}
	wg.Wait()
}

// ParallelForAtomic calls fn(i) for every i in [0, n). Workers take the
// next index from a shared counter, which balances work items of uneven
// cost (a wide sweep mixes 1-lane and 64-lane units). Blocks until done.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// Map calls fn(i) for every i in [0, n) on the pool and returns the
// results indexed by i, independent of completion order.
func Map[R any](p *Pool, n int, fn func(i int) R) []R {
	out := make([]R, max(n, 0))
	p.ParallelForAtomic(n, func(i int) {
		out[i] = fn(i)
	})
	return out
}
