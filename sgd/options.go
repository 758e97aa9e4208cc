// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package sgd

import (
	"fmt"
	"log"

	"github.com/ajroetker/tickgo/vecops"
)

// Option configures a Solver in New. Options are validated eagerly and New
// returns the first error.
type Option[T vecops.Float] func(*Solver[T]) error

// WithStep sets the base step size. It must be positive.
func WithStep[T vecops.Float](step T) Option[T] {
	return func(s *Solver[T]) error {
		if !(step > 0) {
			return fmt.Errorf("%w: got %v", ErrNonPositiveStep, step)
		}
		s.step = step
		return nil
	}
}

// WithEpochSize sets the number of examples processed per Solve. Zero is
// allowed and makes Solve a no-op. The default is the model's NSamples when
// it has one, and zero otherwise.
func WithEpochSize[T vecops.Float](n int) Option[T] {
	return func(s *Solver[T]) error {
		if n < 0 {
			return fmt.Errorf("%w: epoch size %d", ErrNegativeEpoch, n)
		}
		s.epochSize = n
		return nil
	}
}

// WithStartT sets the initial iteration counter, e.g. to resume a schedule.
func WithStartT[T vecops.Float](t int) Option[T] {
	return func(s *Solver[T]) error {
		if t < 0 {
			return fmt.Errorf("%w: start t %d", ErrNegativeEpoch, t)
		}
		s.t = t
		return nil
	}
}

// WithOps overrides the backend. The default is vecops.New[T]().
func WithOps[T vecops.Float](ops vecops.Ops[T]) Option[T] {
	return func(s *Solver[T]) error {
		if ops != nil {
			s.ops = ops
		}
		return nil
	}
}

// WithIterate sets the starting point. x0 is copied.
func WithIterate[T vecops.Float](x0 []T) Option[T] {
	return func(s *Solver[T]) error {
		return s.SetIterate(x0)
	}
}

// WithLogger enables one debug line per epoch. nil disables logging.
func WithLogger[T vecops.Float](l *log.Logger) Option[T] {
	return func(s *Solver[T]) error {
		s.logger = l
		return nil
	}
}
