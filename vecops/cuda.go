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

//go:build cuda

package vecops

/*
#cgo LDFLAGS: -L/usr/local/cuda/lib64 -lcudart -lcublas
#cgo CFLAGS: -I/usr/local/cuda/include

#include <stddef.h>
#include <cuda_runtime.h>
#include <cublas_v2.h>

// Every entry point is one complete round trip: create handle, allocate
// device buffers, copy host->device, run the kernel, copy device->host and
// release everything. All exits go through the "done" label.

enum {
	TICK_OK = 0,
	TICK_HANDLE = 1,
	TICK_ALLOC = 2,
	TICK_H2D = 3,
	TICK_KERNEL = 4,
	TICK_D2H = 5,
};

typedef struct {
	int stage;
	int code;
} tick_status;

#define TICK_FAIL(s, c) do { st.stage = (s); st.code = (int)(c); goto done; } while (0)

#define TICK_DEFINE_DOT(NAME, T, KERNEL)                                          \
static tick_status NAME(int n, const T *x, const T *y, T *out) {                  \
	tick_status st = {TICK_OK, 0};                                                \
	cublasHandle_t h = NULL;                                                      \
	T *dx = NULL, *dy = NULL, *dr = NULL;                                         \
	size_t sz = sizeof(T) * (size_t)n;                                            \
	cudaError_t ce;                                                               \
	cublasStatus_t bs;                                                            \
	if ((bs = cublasCreate(&h)) != CUBLAS_STATUS_SUCCESS) { h = NULL; TICK_FAIL(TICK_HANDLE, bs); } \
	cublasSetPointerMode(h, CUBLAS_POINTER_MODE_DEVICE);                          \
	if ((ce = cudaMalloc((void **)&dx, sz)) != cudaSuccess) { dx = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMalloc((void **)&dy, sz)) != cudaSuccess) { dy = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMalloc((void **)&dr, sizeof(T))) != cudaSuccess) { dr = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMemcpy(dx, x, sz, cudaMemcpyHostToDevice)) != cudaSuccess) TICK_FAIL(TICK_H2D, ce); \
	if ((ce = cudaMemcpy(dy, y, sz, cudaMemcpyHostToDevice)) != cudaSuccess) TICK_FAIL(TICK_H2D, ce); \
	if ((bs = KERNEL(h, n, dx, 1, dy, 1, dr)) != CUBLAS_STATUS_SUCCESS) TICK_FAIL(TICK_KERNEL, bs); \
	if ((ce = cudaMemcpy(out, dr, sizeof(T), cudaMemcpyDeviceToHost)) != cudaSuccess) TICK_FAIL(TICK_D2H, ce); \
done:                                                                             \
	if (dr) cudaFree(dr);                                                         \
	if (dy) cudaFree(dy);                                                         \
	if (dx) cudaFree(dx);                                                         \
	if (h) cublasDestroy(h);                                                      \
	return st;                                                                    \
}

#define TICK_DEFINE_ASUM(NAME, T, KERNEL)                                         \
static tick_status NAME(int n, const T *x, T *out) {                              \
	tick_status st = {TICK_OK, 0};                                                \
	cublasHandle_t h = NULL;                                                      \
	T *dx = NULL, *dr = NULL;                                                     \
	size_t sz = sizeof(T) * (size_t)n;                                            \
	cudaError_t ce;                                                               \
	cublasStatus_t bs;                                                            \
	if ((bs = cublasCreate(&h)) != CUBLAS_STATUS_SUCCESS) { h = NULL; TICK_FAIL(TICK_HANDLE, bs); } \
	cublasSetPointerMode(h, CUBLAS_POINTER_MODE_DEVICE);                          \
	if ((ce = cudaMalloc((void **)&dx, sz)) != cudaSuccess) { dx = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMalloc((void **)&dr, sizeof(T))) != cudaSuccess) { dr = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMemcpy(dx, x, sz, cudaMemcpyHostToDevice)) != cudaSuccess) TICK_FAIL(TICK_H2D, ce); \
	if ((bs = KERNEL(h, n, dx, 1, dr)) != CUBLAS_STATUS_SUCCESS) TICK_FAIL(TICK_KERNEL, bs); \
	if ((ce = cudaMemcpy(out, dr, sizeof(T), cudaMemcpyDeviceToHost)) != cudaSuccess) TICK_FAIL(TICK_D2H, ce); \
done:                                                                             \
	if (dr) cudaFree(dr);                                                         \
	if (dx) cudaFree(dx);                                                         \
	if (h) cublasDestroy(h);                                                      \
	return st;                                                                    \
}

#define TICK_DEFINE_SCAL(NAME, T, KERNEL)                                         \
static tick_status NAME(int n, T alpha, T *x) {                                   \
	tick_status st = {TICK_OK, 0};                                                \
	cublasHandle_t h = NULL;                                                      \
	T *dx = NULL;                                                                 \
	size_t sz = sizeof(T) * (size_t)n;                                            \
	cudaError_t ce;                                                               \
	cublasStatus_t bs;                                                            \
	if ((bs = cublasCreate(&h)) != CUBLAS_STATUS_SUCCESS) { h = NULL; TICK_FAIL(TICK_HANDLE, bs); } \
	if ((ce = cudaMalloc((void **)&dx, sz)) != cudaSuccess) { dx = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMemcpy(dx, x, sz, cudaMemcpyHostToDevice)) != cudaSuccess) TICK_FAIL(TICK_H2D, ce); \
	if ((bs = KERNEL(h, n, &alpha, dx, 1)) != CUBLAS_STATUS_SUCCESS) TICK_FAIL(TICK_KERNEL, bs); \
	if ((ce = cudaMemcpy(x, dx, sz, cudaMemcpyDeviceToHost)) != cudaSuccess) TICK_FAIL(TICK_D2H, ce); \
done:                                                                             \
	if (dx) cudaFree(dx);                                                         \
	if (h) cublasDestroy(h);                                                      \
	return st;                                                                    \
}

#define TICK_DEFINE_AXPY(NAME, T, KERNEL)                                         \
static tick_status NAME(int n, T alpha, const T *x, T *y) {                       \
	tick_status st = {TICK_OK, 0};                                                \
	cublasHandle_t h = NULL;                                                      \
	T *dx = NULL, *dy = NULL;                                                     \
	size_t sz = sizeof(T) * (size_t)n;                                            \
	cudaError_t ce;                                                               \
	cublasStatus_t bs;                                                            \
	if ((bs = cublasCreate(&h)) != CUBLAS_STATUS_SUCCESS) { h = NULL; TICK_FAIL(TICK_HANDLE, bs); } \
	if ((ce = cudaMalloc((void **)&dx, sz)) != cudaSuccess) { dx = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMalloc((void **)&dy, sz)) != cudaSuccess) { dy = NULL; TICK_FAIL(TICK_ALLOC, ce); } \
	if ((ce = cudaMemcpy(dx, x, sz, cudaMemcpyHostToDevice)) != cudaSuccess) TICK_FAIL(TICK_H2D, ce); \
	if ((ce = cudaMemcpy(dy, y, sz, cudaMemcpyHostToDevice)) != cudaSuccess) TICK_FAIL(TICK_H2D, ce); \
	if ((bs = KERNEL(h, n, &alpha, dx, 1, dy, 1)) != CUBLAS_STATUS_SUCCESS) TICK_FAIL(TICK_KERNEL, bs); \
	if ((ce = cudaMemcpy(y, dy, sz, cudaMemcpyDeviceToHost)) != cudaSuccess) TICK_FAIL(TICK_D2H, ce); \
done:                                                                             \
	if (dy) cudaFree(dy);                                                         \
	if (dx) cudaFree(dx);                                                         \
	if (h) cublasDestroy(h);                                                      \
	return st;                                                                    \
}

TICK_DEFINE_DOT(tick_sdot, float, cublasSdot)
TICK_DEFINE_DOT(tick_ddot, double, cublasDdot)
TICK_DEFINE_ASUM(tick_sasum, float, cublasSasum)
TICK_DEFINE_ASUM(tick_dasum, double, cublasDasum)
TICK_DEFINE_SCAL(tick_sscal, float, cublasSscal)
TICK_DEFINE_SCAL(tick_dscal, double, cublasDscal)
TICK_DEFINE_AXPY(tick_saxpy, float, cublasSaxpy)
TICK_DEFINE_AXPY(tick_daxpy, double, cublasDaxpy)
*/
import "C"
import "unsafe"

// CUDA delegates level-1 operations to cuBLAS. Nothing stays resident on
// the device between calls: each operation allocates, transfers, runs and
// frees within the call.
//
// The Try* methods return a *DeviceError on failure. The Ops methods panic
// with that error; sgd.Solver.Solve turns such panics back into errors.
// Sum and Set run on Reference.
type CUDA[T Float] struct {
	Workers int
}

var (
	_ Ops[float32] = CUDA[float32]{}
	_ Ops[float64] = CUDA[float64]{}
)

// Name returns "cuda".
func (CUDA[T]) Name() string { return BackendCUDA.String() }

// TryDot returns Σ x[i]*y[i] computed on the device.
func (CUDA[T]) TryDot(x, y []T) (T, error) {
	checkLen("Dot", len(y), len(x))
	if len(x) == 0 {
		return 0, nil
	}
	if is32[T]() {
		r, err := cudaDot32(f32s(x), f32s(y))
		return T(r), err
	}
	r, err := cudaDot64(f64s(x), f64s(y))
	return T(r), err
}

// TryAbsoluteSum returns Σ |x[i]| computed on the device.
func (CUDA[T]) TryAbsoluteSum(x []T) (T, error) {
	if len(x) == 0 {
		return 0, nil
	}
	if is32[T]() {
		r, err := cudaAsum32(f32s(x))
		return T(r), err
	}
	r, err := cudaAsum64(f64s(x))
	return T(r), err
}

// TryScale sets x[i] *= alpha on the device. On error x is unchanged unless
// the failure happened during the copy back.
func (CUDA[T]) TryScale(alpha T, x []T) error {
	if len(x) == 0 {
		return nil
	}
	if is32[T]() {
		return cudaScal32(float32(alpha), f32s(x))
	}
	return cudaScal64(float64(alpha), f64s(x))
}

// TryMultIncr sets y[i] += alpha * x[i] on the device.
func (CUDA[T]) TryMultIncr(alpha T, x, y []T) error {
	checkLen("MultIncr", len(x), len(y))
	if len(x) == 0 {
		return nil
	}
	if is32[T]() {
		return cudaAxpy32(float32(alpha), f32s(x), f32s(y))
	}
	return cudaAxpy64(float64(alpha), f64s(x), f64s(y))
}

// Dot is TryDot, panicking on device failure.
func (c CUDA[T]) Dot(x, y []T) T {
	r, err := c.TryDot(x, y)
	if err != nil {
		panic(err)
	}
	return r
}

// Sum returns Σ x[i] accumulated in Accum.
func (CUDA[T]) Sum(x []T) Accum {
	return Reference[T]{}.Sum(x)
}

// AbsoluteSum is TryAbsoluteSum, panicking on device failure.
func (c CUDA[T]) AbsoluteSum(x []T) T {
	r, err := c.TryAbsoluteSum(x)
	if err != nil {
		panic(err)
	}
	return r
}

// Scale is TryScale, panicking on device failure.
func (c CUDA[T]) Scale(alpha T, x []T) {
	if err := c.TryScale(alpha, x); err != nil {
		panic(err)
	}
}

// Set sets x[i] = alpha.
func (CUDA[T]) Set(alpha T, x []T) {
	Reference[T]{}.Set(alpha, x)
}

// MultIncr is TryMultIncr, panicking on device failure.
func (c CUDA[T]) MultIncr(alpha T, x, y []T) {
	if err := c.TryMultIncr(alpha, x, y); err != nil {
		panic(err)
	}
}

// BatchDot returns r[i] = Dot(x, ys[i]).
func (c CUDA[T]) BatchDot(x []T, ys [][]T) []T {
	return batchDot(resolveWorkers(c.Workers), c.Dot, x, ys)
}

// BatchMultiIncr applies MultIncr(alpha[i], xs[i], y) for every i.
func (c CUDA[T]) BatchMultiIncr(alpha []T, xs [][]T, y []T) {
	batchMultiIncr(resolveWorkers(c.Workers), c.MultIncr, alpha, xs, y)
}

// BatchMultiIncrRows applies alpha[i] * rows[i] to y for every i.
func (c CUDA[T]) BatchMultiIncrRows(alpha []T, rows []Row[T], y []T) {
	batchMultiIncrRows(resolveWorkers(c.Workers), c.MultIncr, alpha, rows, y)
}

var cudaStages = [...]string{"ok", "handle", "alloc", "host-to-device", "kernel", "device-to-host"}

func cudaErr(op string, st C.tick_status) error {
	if st.stage == C.TICK_OK {
		return nil
	}
	stage := "unknown"
	if s := int(st.stage); s >= 0 && s < len(cudaStages) {
		stage = cudaStages[s]
	}
	return &DeviceError{Backend: BackendCUDA.String(), Op: op, Stage: stage, Code: int(st.code)}
}

// Width-specific round trips. Callers guarantee non-empty, equal-length
// slices.

func cudaDot32(x, y []float32) (float32, error) {
	var out C.float
	st := C.tick_sdot(C.int(len(x)), (*C.float)(unsafe.Pointer(&x[0])), (*C.float)(unsafe.Pointer(&y[0])), &out)
	return float32(out), cudaErr("dot", st)
}

func cudaDot64(x, y []float64) (float64, error) {
	var out C.double
	st := C.tick_ddot(C.int(len(x)), (*C.double)(unsafe.Pointer(&x[0])), (*C.double)(unsafe.Pointer(&y[0])), &out)
	return float64(out), cudaErr("dot", st)
}

func cudaAsum32(x []float32) (float32, error) {
	var out C.float
	st := C.tick_sasum(C.int(len(x)), (*C.float)(unsafe.Pointer(&x[0])), &out)
	return float32(out), cudaErr("asum", st)
}

func cudaAsum64(x []float64) (float64, error) {
	var out C.double
	st := C.tick_dasum(C.int(len(x)), (*C.double)(unsafe.Pointer(&x[0])), &out)
	return float64(out), cudaErr("asum", st)
}

func cudaScal32(alpha float32, x []float32) error {
	st := C.tick_sscal(C.int(len(x)), C.float(alpha), (*C.float)(unsafe.Pointer(&x[0])))
	return cudaErr("scal", st)
}

func cudaScal64(alpha float64, x []float64) error {
	st := C.tick_dscal(C.int(len(x)), C.double(alpha), (*C.double)(unsafe.Pointer(&x[0])))
	return cudaErr("scal", st)
}

func cudaAxpy32(alpha float32, x, y []float32) error {
	st := C.tick_saxpy(C.int(len(x)), C.float(alpha), (*C.float)(unsafe.Pointer(&x[0])), (*C.float)(unsafe.Pointer(&y[0])))
	return cudaErr("axpy", st)
}

func cudaAxpy64(alpha float64, x, y []float64) error {
	st := C.tick_daxpy(C.int(len(x)), C.double(alpha), (*C.double)(unsafe.Pointer(&x[0])), (*C.double)(unsafe.Pointer(&y[0])))
	return cudaErr("axpy", st)
}
