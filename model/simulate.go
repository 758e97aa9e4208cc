// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/tickgo/vecops"
)

// SimConfig describes a synthetic linear regression problem.
type SimConfig struct {
	Samples   int
	Features  int
	Intercept bool

	// Sparse stores rows sparsely, keeping each coordinate with probability
	// Density.
	Sparse  bool
	Density float64

	// Noise is the standard deviation of the label noise.
	Noise float64
	Seed  uint64
}

// Simulation is a generated problem together with its ground truth.
type Simulation[T vecops.Float] struct {
	Model *LeastSquares[T]
	// Weights holds the true coefficients followed by the true intercept
	// when Intercept is set.
	Weights []T
}

// Simulate draws features and coefficients from N(0, 1) and labels as
// x·w + b + Noise*N(0, 1).
func Simulate[T vecops.Float](cfg SimConfig, ops vecops.Ops[T]) (*Simulation[T], error) {
	if cfg.Samples <= 0 || cfg.Features <= 0 {
		return nil, fmt.Errorf("%w: %d samples, %d features", ErrShape, cfg.Samples, cfg.Features)
	}
	if cfg.Sparse && (cfg.Density <= 0 || cfg.Density > 1) {
		return nil, fmt.Errorf("model: density %v not in (0, 1]", cfg.Density)
	}
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))

	nw := cfg.Features
	if cfg.Intercept {
		nw++
	}
	w := make([]T, nw)
	for j := range w {
		w[j] = T(r.NormFloat64())
	}

	rows := make([]vecops.Row[T], cfg.Samples)
	y := make([]T, cfg.Samples)
	for i := range rows {
		if cfg.Sparse {
			var idx []int
			var val []T
			for j := range cfg.Features {
				if r.Float64() < cfg.Density {
					idx = append(idx, j)
					val = append(val, T(r.NormFloat64()))
				}
			}
			rows[i] = vecops.SparseRow(idx, val)
		} else {
			x := make([]T, cfg.Features)
			for j := range x {
				x[j] = T(r.NormFloat64())
			}
			rows[i] = vecops.DenseRow(x)
		}
	}

	m := newLeastSquares(rows, y, cfg.Features, cfg.Intercept, cfg.Sparse, ops)
	for i := range y {
		y[i] = m.predict(i, w) + T(cfg.Noise*r.NormFloat64())
	}
	return &Simulation[T]{Model: m, Weights: w}, nil
}
