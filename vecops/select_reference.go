// SPDX-License-Identifier: Apache-2.0

//go:build !mkl && !blas && !cuda

package vecops

// Selected is the backend compiled into this binary.
const Selected = BackendReference

// Default is the backend type selected at build time when no accelerator tag is set.
type Default[T Float] = Reference[T]

// New returns the build-time selected backend.
func New[T Float]() Ops[T] {
	return Default[T]{}
}
