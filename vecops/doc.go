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

// Package vecops provides the vector arithmetic used by the tickgo solvers
// behind a single contract, [Ops], with one concrete type per backend.
//
// # Primitive Set
//
// Every backend implements the same operations for float32 and float64:
//   - Dot(x, y) - inner product
//   - Sum(x) - sum of elements, accumulated in [Accum]
//   - AbsoluteSum(x) - sum of absolute values
//   - Scale(alpha, x) - x[i] *= alpha
//   - Set(alpha, x) - x[i] = alpha
//   - MultIncr(alpha, x, y) - y[i] += alpha * x[i]
//
// plus the batched operations used by the sparse SGD epoch:
//   - BatchDot(x, ys) - one dot product of x against every ys[i]
//   - BatchMultiIncr(alpha, xs, y) - y += alpha[i] * xs[i] for every i
//   - BatchMultiIncrRows(alpha, rows, y) - same, for dense or sparse [Row]s
//
// # Backends
//
//   - [Reference] - portable loops; batched ops run on a scoped worker group
//   - [BLAS] - gonum BLAS level 1 (blas32/blas64)
//   - MKL - Intel MKL through cgo (build tag "mkl")
//   - CUDA - cuBLAS through cgo, one device round trip per call (build tag "cuda")
//
// Exactly one backend is selected at build time, with priority
// mkl > blas > cuda > reference:
//
//	go build -tags blas ./...
//
// [Default] names the selected type and [New] returns an instance of it.
// There is no runtime switching between backends.
//
// # Batched Accumulate
//
// All contributions of BatchMultiIncr write to the same destination, so the
// work is split by destination index range, never by batch index. Each
// worker applies every contribution, in order, to its own slice of y. The
// result is bit-identical to the sequential loop for any worker count.
//
// # Contract Violations
//
// Mismatched lengths panic with an error wrapping [ErrLengthMismatch].
// Zero-length inputs return 0 without touching any library.
package vecops
