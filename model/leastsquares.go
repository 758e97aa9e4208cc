// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package model provides generalized linear models for the sgd solver.
//
// The iterate layout is w[0:nFeatures] followed, when an intercept is used,
// by the intercept b at w[nFeatures].
package model

import (
	"fmt"

	"github.com/ajroetker/tickgo/vecops"
)

// LeastSquares is linear regression with loss
//
//	1/(2n) Σ_i (x_i·w + b - y_i)²
//
// over dense or sparse feature rows.
type LeastSquares[T vecops.Float] struct {
	rows      []vecops.Row[T]
	labels    []T
	nFeatures int
	intercept bool
	sparse    bool
	ops       vecops.Ops[T]
}

// NewDense returns a dense LeastSquares over the rows of x. All rows must
// have the same length. A nil ops selects vecops.New[T]().
func NewDense[T vecops.Float](x [][]T, y []T, intercept bool, ops vecops.Ops[T]) (*LeastSquares[T], error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrShape, len(x), len(y))
	}
	nFeatures := 0
	if len(x) > 0 {
		nFeatures = len(x[0])
	}
	rows := make([]vecops.Row[T], len(x))
	for i, xi := range x {
		if len(xi) != nFeatures {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrShape, i, len(xi), nFeatures)
		}
		rows[i] = vecops.DenseRow(xi)
	}
	return newLeastSquares(rows, y, nFeatures, intercept, false, ops), nil
}

// NewSparse returns a sparse LeastSquares. Rows may be dense or sparse and
// are validated against nFeatures.
func NewSparse[T vecops.Float](rows []vecops.Row[T], nFeatures int, y []T, intercept bool, ops vecops.Ops[T]) (*LeastSquares[T], error) {
	if len(rows) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrShape, len(rows), len(y))
	}
	for i, r := range rows {
		if err := r.Validate(nFeatures); err != nil {
			return nil, fmt.Errorf("model: row %d: %w", i, err)
		}
	}
	return newLeastSquares(rows, y, nFeatures, intercept, true, ops), nil
}

func newLeastSquares[T vecops.Float](rows []vecops.Row[T], y []T, nFeatures int, intercept, sparse bool, ops vecops.Ops[T]) *LeastSquares[T] {
	if ops == nil {
		ops = vecops.New[T]()
	}
	return &LeastSquares[T]{
		rows:      rows,
		labels:    y,
		nFeatures: nFeatures,
		intercept: intercept,
		sparse:    sparse,
		ops:       ops,
	}
}

func (m *LeastSquares[T]) IsSparse() bool     { return m.sparse }
func (m *LeastSquares[T]) NFeatures() int     { return m.nFeatures }
func (m *LeastSquares[T]) UseIntercept() bool { return m.intercept }
func (m *LeastSquares[T]) NSamples() int      { return len(m.rows) }

// Features returns row i.
func (m *LeastSquares[T]) Features(i int) vecops.Row[T] { return m.rows[i] }

// predict returns x_i·w + b.
func (m *LeastSquares[T]) predict(i int, w []T) T {
	p := vecops.DotRow(m.ops, m.rows[i], w[:m.nFeatures])
	if m.intercept {
		p += w[m.nFeatures]
	}
	return p
}

// GradIFactor returns x_i·w + b - y_i.
func (m *LeastSquares[T]) GradIFactor(i int, w []T) T {
	return m.predict(i, w) - m.labels[i]
}

// GradI writes the gradient of example i into out, which the caller zeroes.
func (m *LeastSquares[T]) GradI(i int, w, out []T) {
	g := m.GradIFactor(i, w)
	r := m.rows[i]
	if r.IsDense() {
		m.ops.MultIncr(g, r.Values, out[:m.nFeatures])
	} else {
		for k, j := range r.Indices {
			out[j] += g * r.Values[k]
		}
	}
	if m.intercept {
		out[m.nFeatures] += g
	}
}

// Loss returns the mean squared residual halved, accumulated in
// vecops.Accum.
func (m *LeastSquares[T]) Loss(w []T) float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum vecops.Accum
	for i := range m.rows {
		r := vecops.Accum(m.GradIFactor(i, w))
		sum += r * r
	}
	return float64(sum) / float64(2*len(m.rows))
}
