// SPDX-License-Identifier: Apache-2.0

//go:build mkl

package vecops

// Selected is the backend compiled into this binary.
const Selected = BackendMKL

// Default is the backend type selected at build time by the "mkl" tag.
type Default[T Float] = MKL[T]

// New returns the build-time selected backend.
func New[T Float]() Ops[T] {
	return Default[T]{}
}
