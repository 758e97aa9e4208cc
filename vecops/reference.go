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

// Reference is the portable backend. Single-vector operations are plain
// sequential loops; batched operations run on a per-call worker group.
//
// The zero value is ready to use. Workers sets the worker count of batched
// operations; 0 means DefaultWorkers() and 1 forces sequential execution.
type Reference[T Float] struct {
	Workers int
}

var (
	_ Ops[float32] = Reference[float32]{}
	_ Ops[float64] = Reference[float64]{}
)

// Name returns "reference".
func (Reference[T]) Name() string { return BackendReference.String() }

// Dot returns Σ x[i]*y[i], summed left to right.
func (Reference[T]) Dot(x, y []T) T {
	checkLen("Dot", len(y), len(x))
	var sum T
	for i := range x {
		sum += x[i] * y[i]
	}
	return sum
}

// Sum returns Σ x[i] accumulated in Accum.
func (Reference[T]) Sum(x []T) Accum {
	var sum Accum
	for _, v := range x {
		sum += Accum(v)
	}
	return sum
}

// AbsoluteSum returns Σ |x[i]|.
func (Reference[T]) AbsoluteSum(x []T) T {
	var sum T
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum
}

// Scale sets x[i] *= alpha.
func (Reference[T]) Scale(alpha T, x []T) {
	for i := range x {
		x[i] *= alpha
	}
}

// Set sets x[i] = alpha.
func (Reference[T]) Set(alpha T, x []T) {
	for i := range x {
		x[i] = alpha
	}
}

// MultIncr sets y[i] += alpha * x[i].
func (Reference[T]) MultIncr(alpha T, x, y []T) {
	checkLen("MultIncr", len(x), len(y))
	for i := range x {
		y[i] += alpha * x[i]
	}
}

// BatchDot returns r[i] = Dot(x, ys[i]).
func (r Reference[T]) BatchDot(x []T, ys [][]T) []T {
	return batchDot(resolveWorkers(r.Workers), r.Dot, x, ys)
}

// BatchMultiIncr applies MultIncr(alpha[i], xs[i], y) for every i.
func (r Reference[T]) BatchMultiIncr(alpha []T, xs [][]T, y []T) {
	batchMultiIncr(resolveWorkers(r.Workers), r.MultIncr, alpha, xs, y)
}

// BatchMultiIncrRows applies alpha[i] * rows[i] to y for every i.
func (r Reference[T]) BatchMultiIncrRows(alpha []T, rows []Row[T], y []T) {
	batchMultiIncrRows(resolveWorkers(r.Workers), r.MultIncr, alpha, rows, y)
}
