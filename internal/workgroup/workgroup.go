// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workgroup runs a fixed number of goroutines over disjoint index
// ranges and joins them before returning. Unlike a persistent pool, a group
// lives for exactly one call, so callers stay stateless and may be invoked
// concurrently from unrelated goroutines.
//
// Usage:
//
//	workgroup.ParallelFor(4, n, func(start, end int) {
//	    for i := start; i < end; i++ {
//	        out[i] = work(i)
//	    }
//	})
package workgroup

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// panicError carries a recovered worker panic back to the calling goroutine.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprintf("workgroup: worker panicked: %v", p.value)
}

// Chunk returns the [start, end) range of chunk i when [0, n) is split into
// the given number of contiguous chunks. The last chunks may be shorter or
// empty when n is not a multiple of workers.
func Chunk(i, workers, n int) (start, end int) {
	size := (n + workers - 1) / workers
	start = min(i*size, n)
	end = min(start+size, n)
	return start, end
}

// ParallelFor executes fn over [0, n) split into at most `workers`
// contiguous ranges, one goroutine per range, and blocks until all of them
// return. fn receives (start, end) and must only touch state owned by that
// range.
//
// With workers <= 1 or n <= 1 the call runs fn(0, n) on the caller's
// goroutine. A panic raised by fn is re-panicked on the caller's goroutine
// after every worker has finished.
func ParallelFor(workers, n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers = min(workers, n)
	if workers <= 1 {
		fn(0, n)
		return
	}

	var g errgroup.Group
	for i := range workers {
		start, end := Chunk(i, workers, n)
		if start >= end {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &panicError{value: r}
				}
			}()
			fn(start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if p, ok := err.(*panicError); ok {
			panic(p.value)
		}
		panic(err)
	}
}
