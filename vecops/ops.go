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

import "fmt"

// Float is the set of element types every backend supports.
type Float interface {
	~float32 | ~float64
}

// Accum is the accumulator type returned by Sum. It is declared on its own
// rather than derived from the element type, so float32 vectors are summed
// in double precision.
type Accum = float64

// Ops is the arithmetic contract shared by all backends.
//
// All slices passed to a single call must have matching lengths; a mismatch
// panics with an error wrapping ErrLengthMismatch.
type Ops[T Float] interface {
	// Name identifies the backend ("reference", "blas", "mkl", "cuda").
	Name() string

	// Dot returns Σ x[i]*y[i].
	Dot(x, y []T) T

	// Sum returns Σ x[i] accumulated in Accum.
	Sum(x []T) Accum

	// AbsoluteSum returns Σ |x[i]|.
	AbsoluteSum(x []T) T

	// Scale sets x[i] *= alpha.
	Scale(alpha T, x []T)

	// Set sets x[i] = alpha.
	Set(alpha T, x []T)

	// MultIncr sets y[i] += alpha * x[i].
	MultIncr(alpha T, x, y []T)

	// BatchDot returns r with r[i] = Dot(x, ys[i]).
	BatchDot(x []T, ys [][]T) []T

	// BatchMultiIncr applies MultIncr(alpha[i], xs[i], y) for every i into the
	// shared destination y. The result equals the sequential loop.
	BatchMultiIncr(alpha []T, xs [][]T, y []T)

	// BatchMultiIncrRows is BatchMultiIncr over dense or sparse rows.
	BatchMultiIncrRows(alpha []T, rows []Row[T], y []T)
}

// Row is a feature row. A nil Indices means the row is dense and Values
// holds every coordinate; otherwise Values[k] is the coordinate at
// Indices[k] and Indices is strictly increasing.
type Row[T Float] struct {
	Indices []int
	Values  []T
}

// DenseRow wraps a dense slice as a Row without copying.
func DenseRow[T Float](values []T) Row[T] {
	return Row[T]{Values: values}
}

// SparseRow builds a sparse Row. It panics if the slices differ in length.
func SparseRow[T Float](indices []int, values []T) Row[T] {
	checkLen("SparseRow", len(values), len(indices))
	if indices == nil {
		indices = []int{}
	}
	return Row[T]{Indices: indices, Values: values}
}

// IsDense reports whether r stores every coordinate.
func (r Row[T]) IsDense() bool {
	return r.Indices == nil
}

// NNZ returns the number of stored values.
func (r Row[T]) NNZ() int {
	return len(r.Values)
}

// Validate checks r against a destination of length n.
func (r Row[T]) Validate(n int) error {
	if r.IsDense() {
		if len(r.Values) != n {
			return fmt.Errorf("%w: dense row has %d values, destination has %d", ErrLengthMismatch, len(r.Values), n)
		}
		return nil
	}
	if len(r.Indices) != len(r.Values) {
		return fmt.Errorf("%w: sparse row has %d indices and %d values", ErrLengthMismatch, len(r.Indices), len(r.Values))
	}
	prev := -1
	for _, idx := range r.Indices {
		if idx <= prev || idx >= n {
			return fmt.Errorf("%w: index %d (previous %d, dim %d)", ErrRowIndex, idx, prev, n)
		}
		prev = idx
	}
	return nil
}

// DotRow returns the dot product of r with a dense vector w.
func DotRow[T Float](ops Ops[T], r Row[T], w []T) T {
	if r.IsDense() {
		return ops.Dot(r.Values, w)
	}
	var sum T
	for k, idx := range r.Indices {
		sum += r.Values[k] * w[idx]
	}
	return sum
}

// Dense expands r into a new dense slice of length n.
func (r Row[T]) Dense(n int) []T {
	out := make([]T, n)
	if r.IsDense() {
		copy(out, r.Values)
		return out
	}
	for k, idx := range r.Indices {
		out[idx] = r.Values[k]
	}
	return out
}
