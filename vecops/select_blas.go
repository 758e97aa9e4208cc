// SPDX-License-Identifier: Apache-2.0

//go:build blas && !mkl

package vecops

// Selected is the backend compiled into this binary.
const Selected = BackendBLAS

// Default is the backend type selected at build time by the "blas" tag.
type Default[T Float] = BLAS[T]

// New returns the build-time selected backend.
func New[T Float]() Ops[T] {
	return Default[T]{}
}
