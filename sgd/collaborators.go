// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package sgd

import "github.com/ajroetker/tickgo/vecops"

// Model supplies per-example gradient information.
//
// Slices passed to a Model are views of the solver's iterate and scratch
// buffers, valid only for the duration of the call.
type Model[T vecops.Float] interface {
	// IsSparse selects the batched sparse epoch in Solve.
	IsSparse() bool

	// NFeatures is the number of feature coordinates, excluding the
	// intercept.
	NFeatures() int

	// UseIntercept reports whether the iterate carries a trailing intercept
	// coordinate.
	UseIntercept() bool

	// GradI writes the gradient of example i at iterate into out, which has
	// the iterate's length and is zeroed by the caller.
	GradI(i int, iterate, out []T)

	// GradIFactor returns the scalar g such that the feature part of example
	// i's gradient is g * Features(i).
	GradIFactor(i int, iterate []T) T

	// Features returns example i's feature row. The solver does not retain
	// or modify it beyond the epoch in which it was requested.
	Features(i int) vecops.Row[T]
}

// Prox applies a proximal correction of the given strength. in and out may
// alias.
type Prox[T vecops.Float] interface {
	Call(in []T, strength T, out []T)
}

// Sampler picks the index of the next example to visit.
type Sampler interface {
	Next() int
}

// sampleCounter is implemented by models that know their number of
// examples. Its value is the default epoch size.
type sampleCounter interface {
	NSamples() int
}
