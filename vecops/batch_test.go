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
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workerCounts = []int{1, 2, 3, 4, 7, 16}

func TestBatchDotMatchesDot(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	// 9, 17 and 33 are not multiples of most worker counts and exercise
	// the sequential remainder.
	for _, b := range []int{0, 1, 2, 7, 8, 9, 16, 17, 33, 100} {
		for _, w := range workerCounts {
			t.Run(fmt.Sprintf("b=%d/workers=%d", b, w), func(t *testing.T) {
				ops := Reference[float64]{Workers: w}
				x := randVec[float64](r, 37)
				ys := randVecs[float64](r, b, 37)

				got := ops.BatchDot(x, ys)
				require.Len(t, got, b)
				for i := range ys {
					require.Equal(t, ops.Dot(x, ys[i]), got[i], "slot %d", i)
				}
			})
		}
	}
}

// sequentialIncr is the reference semantics of BatchMultiIncr.
func sequentialIncr[T Float](alpha []T, xs [][]T, y []T) {
	for i := range alpha {
		for j := range y {
			y[j] += alpha[i] * xs[i][j]
		}
	}
}

func TestBatchMultiIncrMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	// 2048 >= 4*MinParallelChunk, so b >= MinParallelBatch takes the
	// parallel path for up to 8 workers.
	for _, n := range []int{1, 100, 2048} {
		for _, b := range []int{0, 1, 5, MinParallelBatch, 64} {
			for _, w := range workerCounts {
				t.Run(fmt.Sprintf("n=%d/b=%d/workers=%d", n, b, w), func(t *testing.T) {
					alpha := randVec[float64](r, b)
					xs := randVecs[float64](r, b, n)
					y0 := randVec[float64](r, n)

					want := append([]float64(nil), y0...)
					sequentialIncr(alpha, xs, want)

					got := append([]float64(nil), y0...)
					Reference[float64]{Workers: w}.BatchMultiIncr(alpha, xs, got)

					// Destination partitioning preserves the per-coordinate
					// order of additions, so the match is exact.
					require.Equal(t, want, got)
				})
			}
		}
	}
}

func TestBatchMultiIncrFloat32Exact(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	const n, b = 4096, 32
	alpha := randVec[float32](r, b)
	xs := randVecs[float32](r, b, n)
	y0 := randVec[float32](r, n)

	want := append([]float32(nil), y0...)
	Reference[float32]{Workers: 1}.BatchMultiIncr(alpha, xs, want)

	for _, w := range workerCounts {
		got := append([]float32(nil), y0...)
		Reference[float32]{Workers: w}.BatchMultiIncr(alpha, xs, got)
		require.Equal(t, want, got, "workers=%d", w)
	}
}

func TestBatchMultiIncrRowsMatchesDense(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	const n = 2048

	for _, b := range []int{0, 1, 3, 40} {
		for _, w := range workerCounts {
			t.Run(fmt.Sprintf("b=%d/workers=%d", b, w), func(t *testing.T) {
				alpha := randVec[float64](r, b)
				rows := make([]Row[float64], b)
				dense := make([][]float64, b)
				for i := range rows {
					switch i % 3 {
					case 0:
						rows[i] = DenseRow(randVec[float64](r, n))
					case 1:
						rows[i] = randSparseRow(r, n, 0.05)
					default:
						rows[i] = SparseRow[float64](nil, nil)
					}
					dense[i] = rows[i].Dense(n)
				}
				y0 := randVec[float64](r, n)

				want := append([]float64(nil), y0...)
				sequentialIncr(alpha, dense, want)

				got := append([]float64(nil), y0...)
				Reference[float64]{Workers: w}.BatchMultiIncrRows(alpha, rows, got)

				requireSliceClose(t, want, got, tol64)
			})
		}
	}
}

func randSparseRow(r *rand.Rand, n int, density float64) Row[float64] {
	var idx []int
	var val []float64
	for j := range n {
		if r.Float64() < density {
			idx = append(idx, j)
			val = append(val, r.Float64()*2-1)
		}
	}
	return SparseRow(idx, val)
}

func TestBatchMultiIncrRowsRejectsBadIndex(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		require.ErrorIs(t, r.(error), ErrRowIndex)
	}()
	rows := []Row[float64]{SparseRow([]int{5}, []float64{1})}
	Reference[float64]{}.BatchMultiIncrRows([]float64{1}, rows, make([]float64, 3))
}

func TestBatchEmpty(t *testing.T) {
	ops := Reference[float64]{}
	assert.Empty(t, ops.BatchDot([]float64{1, 2}, nil))

	y := []float64{1, 2}
	ops.BatchMultiIncr(nil, nil, y)
	ops.BatchMultiIncrRows(nil, nil, y)
	assert.Equal(t, []float64{1, 2}, y)
}

func TestBatchConcurrentCallers(t *testing.T) {
	// Backends are stateless values; unrelated callers may share one.
	ops := Reference[float64]{Workers: 4}
	r := rand.New(rand.NewPCG(13, 14))
	const n, b = 2048, 16
	alpha := randVec[float64](r, b)
	xs := randVecs[float64](r, b, n)

	want := make([]float64, n)
	sequentialIncr(alpha, xs, want)

	var wg sync.WaitGroup
	results := make([][]float64, 8)
	for g := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			y := make([]float64, n)
			ops.BatchMultiIncr(alpha, xs, y)
			results[g] = y
		}()
	}
	wg.Wait()

	for g, got := range results {
		require.Equal(t, want, got, "caller %d", g)
	}
}

func BenchmarkBatchMultiIncr(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	const n, batch = 1 << 14, 64
	alpha := randVec[float64](r, batch)
	xs := randVecs[float64](r, batch, n)
	y := make([]float64, n)

	for _, w := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", w), func(b *testing.B) {
			ops := Reference[float64]{Workers: w}
			for b.Loop() {
				ops.BatchMultiIncr(alpha, xs, y)
			}
		})
	}
}

func BenchmarkBatchDot(b *testing.B) {
	r := rand.New(rand.NewPCG(2, 2))
	const n, batch = 1024, 256
	x := randVec[float64](r, n)
	ys := randVecs[float64](r, batch, n)

	for _, w := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", w), func(b *testing.B) {
			ops := Reference[float64]{Workers: w}
			for b.Loop() {
				_ = ops.BatchDot(x, ys)
			}
		})
	}
}
