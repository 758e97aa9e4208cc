// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vecops

import (
	"slices"

	"github.com/ajroetker/tickgo/internal/workgroup"
)

// The batched operations below are shared by every backend. Each backend
// passes its own single-vector primitive as the inner operation, so batching
// is a policy of this package rather than a capability of any library.

// batchDot computes result[i] = dot(x, ys[i]).
//
// When the batch is large enough, the first workers*(b/workers) items are
// split into one contiguous result range per worker; the b%workers remaining
// items always run sequentially after the join. Ranges never overlap, so no
// two workers write the same result slot.
func batchDot[T Float](workers int, dot func(x, y []T) T, x []T, ys [][]T) []T {
	b := len(ys)
	result := make([]T, b)
	if b == 0 {
		return result
	}
	for _, y := range ys {
		checkLen("BatchDot", len(y), len(x))
	}

	var done int
	if per := b / workers; workers > 1 && b >= MinParallelBatch && per > 0 {
		done = per * workers
		workgroup.ParallelFor(workers, done, func(start, end int) {
			for i := start; i < end; i++ {
				result[i] = dot(x, ys[i])
			}
		})
	}

	for i := done; i < b; i++ {
		result[i] = dot(x, ys[i])
	}
	return result
}

// parallelIncr reports whether a batched accumulate of b contributions into
// a destination of length n should start a worker group.
func parallelIncr(workers, b, n int) bool {
	return workers > 1 && b >= MinParallelBatch && n >= workers*MinParallelChunk
}

// batchMultiIncr applies incr(alpha[i], xs[i], y) for i = 0..b-1.
//
// In parallel mode the destination is split into disjoint index ranges, one
// per worker, and every worker applies all b contributions in batch order to
// its own range. Each y[j] therefore sees the same sequence of additions as
// in the sequential loop.
func batchMultiIncr[T Float](workers int, incr func(alpha T, x, y []T), alpha []T, xs [][]T, y []T) {
	b := len(alpha)
	checkLen("BatchMultiIncr", len(xs), b)
	if b == 0 {
		return
	}
	for _, x := range xs {
		checkLen("BatchMultiIncr", len(x), len(y))
	}

	if !parallelIncr(workers, b, len(y)) {
		for i := range b {
			incr(alpha[i], xs[i], y)
		}
		return
	}

	workgroup.ParallelFor(workers, len(y), func(lo, hi int) {
		ys := y[lo:hi]
		for i := range b {
			incr(alpha[i], xs[i][lo:hi], ys)
		}
	})
}

// batchMultiIncrRows is batchMultiIncr over Rows. Dense rows go through
// incr; sparse rows are scattered directly. Empty rows are skipped.
func batchMultiIncrRows[T Float](workers int, incr func(alpha T, x, y []T), alpha []T, rows []Row[T], y []T) {
	b := len(alpha)
	checkLen("BatchMultiIncrRows", len(rows), b)
	if b == 0 {
		return
	}
	for _, r := range rows {
		if err := r.Validate(len(y)); err != nil {
			panic(err)
		}
	}

	if !parallelIncr(workers, b, len(y)) {
		for i, r := range rows {
			switch {
			case r.NNZ() == 0:
			case r.IsDense():
				incr(alpha[i], r.Values, y)
			default:
				scatterIncr(alpha[i], r.Indices, r.Values, y)
			}
		}
		return
	}

	workgroup.ParallelFor(workers, len(y), func(lo, hi int) {
		for i, r := range rows {
			switch {
			case r.NNZ() == 0:
			case r.IsDense():
				incr(alpha[i], r.Values[lo:hi], y[lo:hi])
			default:
				k0, _ := slices.BinarySearch(r.Indices, lo)
				k1, _ := slices.BinarySearch(r.Indices, hi)
				scatterIncr(alpha[i], r.Indices[k0:k1], r.Values[k0:k1], y)
			}
		}
	})
}

// scatterIncr sets y[indices[k]] += alpha * values[k].
func scatterIncr[T Float](alpha T, indices []int, values []T, y []T) {
	for k, idx := range indices {
		y[idx] += alpha * values[k]
	}
}
