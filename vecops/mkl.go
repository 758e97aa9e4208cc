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

//go:build mkl

// NOTE: this file imports "C". With CGO_ENABLED=0 it is dropped from the
// build and the "mkl" selector no longer compiles, so a missing MKL is a
// build failure rather than a silent fallback.

package vecops

/*
#cgo LDFLAGS: -lmkl_rt -lpthread -lm -ldl
#include <mkl.h>
*/
import "C"
import "unsafe"

// MKL delegates level-1 operations to Intel MKL's CBLAS interface.
// Sum and Set run on Reference.
type MKL[T Float] struct {
	Workers int
}

var (
	_ Ops[float32] = MKL[float32]{}
	_ Ops[float64] = MKL[float64]{}
)

// Name returns "mkl".
func (MKL[T]) Name() string { return BackendMKL.String() }

// Dot returns Σ x[i]*y[i] via cblas_sdot/cblas_ddot.
func (MKL[T]) Dot(x, y []T) T {
	checkLen("Dot", len(y), len(x))
	if len(x) == 0 {
		return 0
	}
	if is32[T]() {
		return T(mklDot32(f32s(x), f32s(y)))
	}
	return T(mklDot64(f64s(x), f64s(y)))
}

// Sum returns Σ x[i] accumulated in Accum.
func (MKL[T]) Sum(x []T) Accum {
	return Reference[T]{}.Sum(x)
}

// AbsoluteSum returns Σ |x[i]| via cblas_sasum/cblas_dasum.
func (MKL[T]) AbsoluteSum(x []T) T {
	if len(x) == 0 {
		return 0
	}
	if is32[T]() {
		return T(mklAsum32(f32s(x)))
	}
	return T(mklAsum64(f64s(x)))
}

// Scale sets x[i] *= alpha via cblas_sscal/cblas_dscal.
func (MKL[T]) Scale(alpha T, x []T) {
	if len(x) == 0 {
		return
	}
	if is32[T]() {
		mklScal32(float32(alpha), f32s(x))
		return
	}
	mklScal64(float64(alpha), f64s(x))
}

// Set sets x[i] = alpha.
func (MKL[T]) Set(alpha T, x []T) {
	Reference[T]{}.Set(alpha, x)
}

// MultIncr sets y[i] += alpha * x[i] via cblas_saxpy/cblas_daxpy.
func (MKL[T]) MultIncr(alpha T, x, y []T) {
	checkLen("MultIncr", len(x), len(y))
	if len(x) == 0 {
		return
	}
	if is32[T]() {
		mklAxpy32(float32(alpha), f32s(x), f32s(y))
		return
	}
	mklAxpy64(float64(alpha), f64s(x), f64s(y))
}

// BatchDot returns r[i] = Dot(x, ys[i]).
func (m MKL[T]) BatchDot(x []T, ys [][]T) []T {
	return batchDot(resolveWorkers(m.Workers), m.Dot, x, ys)
}

// BatchMultiIncr applies MultIncr(alpha[i], xs[i], y) for every i.
func (m MKL[T]) BatchMultiIncr(alpha []T, xs [][]T, y []T) {
	batchMultiIncr(resolveWorkers(m.Workers), m.MultIncr, alpha, xs, y)
}

// BatchMultiIncrRows applies alpha[i] * rows[i] to y for every i.
func (m MKL[T]) BatchMultiIncrRows(alpha []T, rows []Row[T], y []T) {
	batchMultiIncrRows(resolveWorkers(m.Workers), m.MultIncr, alpha, rows, y)
}

// Width-specific CBLAS calls. Callers guarantee non-empty, equal-length
// slices.

func mklDot32(x, y []float32) float32 {
	return float32(C.cblas_sdot(C.MKL_INT(len(x)),
		(*C.float)(unsafe.Pointer(&x[0])), 1,
		(*C.float)(unsafe.Pointer(&y[0])), 1))
}

func mklDot64(x, y []float64) float64 {
	return float64(C.cblas_ddot(C.MKL_INT(len(x)),
		(*C.double)(unsafe.Pointer(&x[0])), 1,
		(*C.double)(unsafe.Pointer(&y[0])), 1))
}

func mklAsum32(x []float32) float32 {
	return float32(C.cblas_sasum(C.MKL_INT(len(x)), (*C.float)(unsafe.Pointer(&x[0])), 1))
}

func mklAsum64(x []float64) float64 {
	return float64(C.cblas_dasum(C.MKL_INT(len(x)), (*C.double)(unsafe.Pointer(&x[0])), 1))
}

func mklScal32(alpha float32, x []float32) {
	C.cblas_sscal(C.MKL_INT(len(x)), C.float(alpha), (*C.float)(unsafe.Pointer(&x[0])), 1)
}

func mklScal64(alpha float64, x []float64) {
	C.cblas_dscal(C.MKL_INT(len(x)), C.double(alpha), (*C.double)(unsafe.Pointer(&x[0])), 1)
}

func mklAxpy32(alpha float32, x, y []float32) {
	C.cblas_saxpy(C.MKL_INT(len(x)), C.float(alpha),
		(*C.float)(unsafe.Pointer(&x[0])), 1,
		(*C.float)(unsafe.Pointer(&y[0])), 1)
}

func mklAxpy64(alpha float64, x, y []float64) {
	C.cblas_daxpy(C.MKL_INT(len(x)), C.double(alpha),
		(*C.double)(unsafe.Pointer(&x[0])), 1,
		(*C.double)(unsafe.Pointer(&y[0])), 1)
}
