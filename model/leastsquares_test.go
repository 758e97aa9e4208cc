// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package model

import (
	"math"
	"testing"

	"github.com/ajroetker/tickgo/vecops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeastSquaresDense(t *testing.T) {
	x := [][]float64{{1, 2}, {3, -1}}
	y := []float64{1, 0}
	m, err := NewDense(x, y, true, nil)
	require.NoError(t, err)

	assert.False(t, m.IsSparse())
	assert.Equal(t, 2, m.NFeatures())
	assert.Equal(t, 2, m.NSamples())
	assert.True(t, m.UseIntercept())

	w := []float64{0.5, 1, -1}
	// x_0·w + b - y_0 = 0.5 + 2 - 1 - 1 = 0.5
	assert.Equal(t, 0.5, m.GradIFactor(0, w))

	grad := make([]float64, 3)
	m.GradI(0, w, grad)
	assert.Equal(t, []float64{0.5, 1, 0.5}, grad)

	// residuals 0.5 and 1.5 - 1 - 1 - 0 = -0.5
	assert.InDelta(t, (0.25+0.25)/4, m.Loss(w), 1e-15)
}

func TestLeastSquaresSparseMatchesDense(t *testing.T) {
	dense := [][]float64{{0, 2, 0, 1}, {3, 0, 0, 0}, {0, 0, 0, 0}}
	rows := []vecops.Row[float64]{
		vecops.SparseRow([]int{1, 3}, []float64{2, 1}),
		vecops.SparseRow([]int{0}, []float64{3}),
		vecops.SparseRow[float64](nil, nil),
	}
	y := []float64{1, -1, 2}

	for _, intercept := range []bool{false, true} {
		md, err := NewDense(dense, y, intercept, nil)
		require.NoError(t, err)
		ms, err := NewSparse(rows, 4, y, intercept, nil)
		require.NoError(t, err)
		assert.True(t, ms.IsSparse())

		w := []float64{0.1, -0.2, 0.3, 0.4, 0.5}
		if !intercept {
			w = w[:4]
		}
		for i := range y {
			assert.InDelta(t, md.GradIFactor(i, w), ms.GradIFactor(i, w), 1e-15)

			gd := make([]float64, len(w))
			gs := make([]float64, len(w))
			md.GradI(i, w, gd)
			ms.GradI(i, w, gs)
			assert.InDeltaSlice(t, gd, gs, 1e-15)
		}
		assert.InDelta(t, md.Loss(w), ms.Loss(w), 1e-15)
	}
}

func TestLeastSquaresShapeErrors(t *testing.T) {
	_, err := NewDense([][]float64{{1}}, []float64{1, 2}, false, nil)
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewDense([][]float64{{1}, {1, 2}}, []float64{1, 2}, false, nil)
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewSparse([]vecops.Row[float64]{vecops.SparseRow([]int{4}, []float64{1})}, 4, []float64{1}, false, nil)
	assert.ErrorIs(t, err, vecops.ErrRowIndex)
}

func TestSimulate(t *testing.T) {
	tests := []struct {
		name string
		cfg  SimConfig
	}{
		{"dense", SimConfig{Samples: 50, Features: 6, Seed: 1}},
		{"dense intercept", SimConfig{Samples: 50, Features: 6, Intercept: true, Seed: 2}},
		{"sparse", SimConfig{Samples: 50, Features: 40, Sparse: true, Density: 0.1, Seed: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := Simulate[float64](tt.cfg, nil)
			require.NoError(t, err)
			m := sim.Model
			assert.Equal(t, tt.cfg.Sparse, m.IsSparse())
			assert.Equal(t, tt.cfg.Samples, m.NSamples())
			assert.Equal(t, m.NFeatures()+btoi(tt.cfg.Intercept), len(sim.Weights))
			for i := range m.NSamples() {
				require.NoError(t, m.Features(i).Validate(m.NFeatures()))
			}
			// Noise-free labels are fitted exactly by the true weights.
			assert.InDelta(t, 0, m.Loss(sim.Weights), 1e-20)
		})
	}

	_, err := Simulate[float32](SimConfig{Samples: 0, Features: 1}, nil)
	assert.ErrorIs(t, err, ErrShape)
	_, err = Simulate[float32](SimConfig{Samples: 1, Features: 1, Sparse: true}, nil)
	assert.Error(t, err)
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := SimConfig{Samples: 10, Features: 3, Noise: 0.1, Seed: 9}
	a, err := Simulate[float32](cfg, nil)
	require.NoError(t, err)
	b, err := Simulate[float32](cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Weights, b.Weights)
	assert.False(t, math.IsNaN(a.Model.Loss(a.Weights)))
	assert.Equal(t, a.Model.Loss(a.Weights), b.Model.Loss(b.Weights))
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
