// SPDX-License-Identifier: Apache-2.0

//go:build cuda && !mkl && !blas

package vecops

// Selected is the backend compiled into this binary.
const Selected = BackendCUDA

// Default is the backend type selected at build time by the "cuda" tag.
type Default[T Float] = CUDA[T]

// New returns the build-time selected backend.
func New[T Float]() Ops[T] {
	return Default[T]{}
}
