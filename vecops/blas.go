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
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// BLAS delegates level-1 operations to gonum's BLAS interface (blas32 for
// float32, blas64 for float64). gonum ships a pure Go implementation with
// assembly kernels; a process may rebind it to a system CBLAS with
// blas64.Use / blas32.Use before the first call.
//
// Sum and Set have no BLAS routine and run on Reference. Batched operations
// use the Reference batching policy with BLAS Dot/Axpy as the inner op.
//
// BLAS is always compiled so that it can be tested against Reference; the
// "blas" build tag only makes it the Default.
type BLAS[T Float] struct {
	Workers int
}

var (
	_ Ops[float32] = BLAS[float32]{}
	_ Ops[float64] = BLAS[float64]{}
)

// Name returns "blas".
func (BLAS[T]) Name() string { return BackendBLAS.String() }

// Dot returns Σ x[i]*y[i] via sdot/ddot.
func (BLAS[T]) Dot(x, y []T) T {
	checkLen("Dot", len(y), len(x))
	if len(x) == 0 {
		return 0
	}
	if is32[T]() {
		return T(blas32.Dot(vec32(x), vec32(y)))
	}
	return T(blas64.Dot(vec64(x), vec64(y)))
}

// Sum returns Σ x[i] accumulated in Accum.
func (BLAS[T]) Sum(x []T) Accum {
	return Reference[T]{}.Sum(x)
}

// AbsoluteSum returns Σ |x[i]| via sasum/dasum.
func (BLAS[T]) AbsoluteSum(x []T) T {
	if len(x) == 0 {
		return 0
	}
	if is32[T]() {
		return T(blas32.Asum(vec32(x)))
	}
	return T(blas64.Asum(vec64(x)))
}

// Scale sets x[i] *= alpha via sscal/dscal.
func (BLAS[T]) Scale(alpha T, x []T) {
	if len(x) == 0 {
		return
	}
	if is32[T]() {
		blas32.Scal(float32(alpha), vec32(x))
		return
	}
	blas64.Scal(float64(alpha), vec64(x))
}

// Set sets x[i] = alpha.
func (BLAS[T]) Set(alpha T, x []T) {
	Reference[T]{}.Set(alpha, x)
}

// MultIncr sets y[i] += alpha * x[i] via saxpy/daxpy.
func (BLAS[T]) MultIncr(alpha T, x, y []T) {
	checkLen("MultIncr", len(x), len(y))
	if len(x) == 0 {
		return
	}
	if is32[T]() {
		blas32.Axpy(float32(alpha), vec32(x), vec32(y))
		return
	}
	blas64.Axpy(float64(alpha), vec64(x), vec64(y))
}

// BatchDot returns r[i] = Dot(x, ys[i]).
func (b BLAS[T]) BatchDot(x []T, ys [][]T) []T {
	return batchDot(resolveWorkers(b.Workers), b.Dot, x, ys)
}

// BatchMultiIncr applies MultIncr(alpha[i], xs[i], y) for every i.
func (b BLAS[T]) BatchMultiIncr(alpha []T, xs [][]T, y []T) {
	batchMultiIncr(resolveWorkers(b.Workers), b.MultIncr, alpha, xs, y)
}

// BatchMultiIncrRows applies alpha[i] * rows[i] to y for every i.
func (b BLAS[T]) BatchMultiIncrRows(alpha []T, rows []Row[T], y []T) {
	batchMultiIncrRows(resolveWorkers(b.Workers), b.MultIncr, alpha, rows, y)
}

func vec32[T Float](x []T) blas32.Vector {
	return blas32.Vector{N: len(x), Data: f32s(x), Inc: 1}
}

func vec64[T Float](x []T) blas64.Vector {
	return blas64.Vector{N: len(x), Data: f64s(x), Inc: 1}
}
