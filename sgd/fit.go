// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package sgd

import (
	"context"
	"math"

	"github.com/ajroetker/tickgo/vecops"
)

// FitConfig controls Fit.
type FitConfig[T vecops.Float] struct {
	// MaxEpochs bounds the number of Solve calls.
	MaxEpochs int

	// Tol stops the loop once the relative distance between consecutive
	// iterates is <= Tol. Zero disables early stopping.
	Tol float64

	// RecordEvery records one Record every RecordEvery epochs. The last
	// epoch is always recorded. Values <= 0 mean every epoch.
	RecordEvery int

	// Objective, if set, is evaluated for every recorded epoch.
	Objective func(iterate []T) float64
}

// Record is one row of a fit history.
type Record struct {
	Epoch     int
	T         int
	RelDist   float64
	Objective float64
}

// History summarizes a Fit run.
type History struct {
	Records   []Record
	Epochs    int
	Converged bool
}

// Last returns the final record, or the zero Record if none was recorded.
func (h History) Last() Record {
	if len(h.Records) == 0 {
		return Record{}
	}
	return h.Records[len(h.Records)-1]
}

// Fit calls s.Solve up to cfg.MaxEpochs times. It stops early when the
// iterate's relative change drops to cfg.Tol or ctx is done; cancellation
// is checked between epochs only.
func Fit[T vecops.Float](ctx context.Context, s *Solver[T], cfg FitConfig[T]) (History, error) {
	var h History
	every := max(1, cfg.RecordEvery)
	prev := make([]T, len(s.Iterate()))

	for epoch := 1; epoch <= cfg.MaxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return h, err
		}
		copy(prev, s.Iterate())
		if err := s.Solve(); err != nil {
			return h, err
		}
		h.Epochs = epoch

		rel := RelativeDistance(s.Iterate(), prev)
		converged := cfg.Tol > 0 && rel <= cfg.Tol
		if epoch%every == 0 || epoch == cfg.MaxEpochs || converged {
			rec := Record{Epoch: epoch, T: s.T(), RelDist: rel, Objective: math.NaN()}
			if cfg.Objective != nil {
				rec.Objective = cfg.Objective(s.Iterate())
			}
			h.Records = append(h.Records, rec)
		}
		if converged {
			h.Converged = true
			break
		}
	}
	return h, nil
}

// RelativeDistance returns ||x - prev|| / max(||x||, ||prev||), or zero
// when both are zero.
func RelativeDistance[T vecops.Float](x, prev []T) float64 {
	var diff, nx, np float64
	for i := range x {
		a, b := float64(x[i]), float64(prev[i])
		diff += (a - b) * (a - b)
		nx += a * a
		np += b * b
	}
	norm := math.Sqrt(max(nx, np))
	if norm == 0 {
		return 0
	}
	return math.Sqrt(diff) / norm
}
