// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package prox provides proximal operators for the sgd solver.
//
// Each operator maps in to out for a step strength s, and in and out may
// be the same slice. Coordinates outside the operator's range are copied
// unchanged, which is how an intercept is kept unpenalized.
package prox

import (
	"github.com/ajroetker/tickgo/vecops"
)

// Range selects the coordinates [Start, End) a penalty applies to. The zero
// Range covers the whole vector.
type Range struct {
	Start, End int
}

func (r Range) bounds(n int) (int, int) {
	if r.Start == 0 && r.End == 0 {
		return 0, n
	}
	return min(r.Start, n), min(r.End, n)
}

// Zero is the identity operator.
type Zero[T vecops.Float] struct{}

// Call copies in to out.
func (Zero[T]) Call(in []T, _ T, out []T) {
	copy(out, in)
}

// Value returns 0.
func (Zero[T]) Value([]T) float64 { return 0 }

// L2Sq is the ridge penalty Strength/2 * ||x||², with proximal map
// x / (1 + Strength*s).
type L2Sq[T vecops.Float] struct {
	Strength T
	Range    Range
	// Ops is used for the in-place scaling. nil selects vecops.New[T]().
	Ops vecops.Ops[T]
}

// Call applies the proximal map.
func (p L2Sq[T]) Call(in []T, s T, out []T) {
	copy(out, in)
	lo, hi := p.Range.bounds(len(out))
	if lo >= hi {
		return
	}
	ops := p.Ops
	if ops == nil {
		ops = vecops.New[T]()
	}
	ops.Scale(1/(1+p.Strength*s), out[lo:hi])
}

// Value returns the penalty at x.
func (p L2Sq[T]) Value(x []T) float64 {
	lo, hi := p.Range.bounds(len(x))
	var sum vecops.Accum
	for _, v := range x[lo:hi] {
		sum += vecops.Accum(v) * vecops.Accum(v)
	}
	return float64(p.Strength) / 2 * float64(sum)
}

// L1 is the lasso penalty Strength * ||x||₁, with proximal map the
// soft-threshold at Strength*s.
type L1[T vecops.Float] struct {
	Strength T
	Range    Range
	// Positive additionally projects onto x >= 0.
	Positive bool
	// Ops is used for the penalty value. nil selects vecops.New[T]().
	Ops vecops.Ops[T]
}

// Call applies the proximal map.
func (p L1[T]) Call(in []T, s T, out []T) {
	copy(out, in)
	lo, hi := p.Range.bounds(len(out))
	thresh := p.Strength * s
	for j := lo; j < hi; j++ {
		v := out[j]
		switch {
		case v > thresh:
			out[j] = v - thresh
		case v < -thresh && !p.Positive:
			out[j] = v + thresh
		default:
			out[j] = 0
		}
	}
}

// Value returns the penalty at x.
func (p L1[T]) Value(x []T) float64 {
	lo, hi := p.Range.bounds(len(x))
	if lo >= hi {
		return 0
	}
	ops := p.Ops
	if ops == nil {
		ops = vecops.New[T]()
	}
	return float64(p.Strength) * float64(ops.AbsoluteSum(x[lo:hi]))
}
