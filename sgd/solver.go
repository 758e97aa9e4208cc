// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package sgd

import (
	"errors"
	"fmt"
	"log"

	"github.com/ajroetker/tickgo/vecops"
)

// Solver runs SGD epochs over a Model. A Solver is not safe for concurrent
// use; independent Solvers may share a backend.
type Solver[T vecops.Float] struct {
	model   Model[T]
	prox    Prox[T]
	sampler Sampler
	ops     vecops.Ops[T]
	logger  *log.Logger

	step      T
	epochSize int
	t         int
	stepT     T

	iterate []T
	grad    []T

	// Sparse epoch buffers, reused across epochs. Index k of all three
	// refers to the k-th sampled example.
	steps  []T
	deltas []T
	rows   []vecops.Row[T]
}

// New returns a Solver for model. The iterate starts at zero unless
// WithIterate is given, and the base step must be set with WithStep.
func New[T vecops.Float](model Model[T], prox Prox[T], sampler Sampler, opts ...Option[T]) (*Solver[T], error) {
	switch {
	case model == nil:
		return nil, ErrNilModel
	case prox == nil:
		return nil, ErrNilProx
	case sampler == nil:
		return nil, ErrNilSampler
	}
	s := &Solver[T]{
		model:   model,
		prox:    prox,
		sampler: sampler,
		ops:     vecops.New[T](),
	}
	s.iterate = make([]T, s.iterateLen())
	if c, ok := model.(sampleCounter); ok {
		s.epochSize = c.NSamples()
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if !(s.step > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveStep, s.step)
	}
	return s, nil
}

func (s *Solver[T]) iterateLen() int {
	n := s.model.NFeatures()
	if s.model.UseIntercept() {
		n++
	}
	return n
}

// StepT returns step / (t + 1) for the current iteration counter.
func (s *Solver[T]) StepT() T {
	return s.step / T(s.t+1)
}

// LastStepT returns the step used by the most recent iteration, or zero
// before the first one.
func (s *Solver[T]) LastStepT() T { return s.stepT }

// T returns the iteration counter. It is never reset by Solve.
func (s *Solver[T]) T() int { return s.t }

// Step returns the base step size.
func (s *Solver[T]) Step() T { return s.step }

// EpochSize returns the number of examples processed per Solve.
func (s *Solver[T]) EpochSize() int { return s.epochSize }

// Ops returns the backend in use.
func (s *Solver[T]) Ops() vecops.Ops[T] { return s.ops }

// Iterate returns the current iterate. The slice is owned by the solver and
// is modified by the next Solve.
func (s *Solver[T]) Iterate() []T { return s.iterate }

// SetIterate copies x into the iterate.
func (s *Solver[T]) SetIterate(x []T) error {
	if want := s.iterateLen(); len(x) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrIterateSize, len(x), want)
	}
	s.iterate = append(s.iterate[:0], x...)
	return nil
}

// Solve runs one epoch of EpochSize iterations starting at the current
// iteration counter, which is left at T()+EpochSize.
//
// A backend failure (vecops.ErrDevice) or a malformed feature row
// (vecops.ErrLengthMismatch, vecops.ErrRowIndex) is returned as an error. In
// that case the iterate may be partially updated.
func (s *Solver[T]) Solve() (err error) {
	if s.epochSize == 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !isBackendError(e) {
				panic(r)
			}
			err = fmt.Errorf("sgd: epoch at t=%d: %w", s.t, e)
		}
	}()

	startT := s.t
	if s.model.IsSparse() {
		err = s.solveSparse()
	} else {
		s.solveDense()
	}
	if err == nil && s.logger != nil {
		s.logger.Printf("sgd: epoch t=%d..%d step_t=%g backend=%s",
			startT, s.t, float64(s.stepT), s.ops.Name())
	}
	return err
}

func isBackendError(err error) bool {
	return errors.Is(err, vecops.ErrDevice) ||
		errors.Is(err, vecops.ErrLengthMismatch) ||
		errors.Is(err, vecops.ErrRowIndex)
}

func (s *Solver[T]) solveDense() {
	if len(s.grad) != len(s.iterate) {
		s.grad = make([]T, len(s.iterate))
	}
	end := s.t + s.epochSize
	for ; s.t < end; s.t++ {
		i := s.sampler.Next()
		s.ops.Set(0, s.grad)
		s.model.GradI(i, s.iterate, s.grad)
		s.stepT = s.StepT()
		s.ops.MultIncr(-s.stepT, s.grad, s.iterate)
		s.prox.Call(s.iterate, s.stepT, s.iterate)
	}
}

func (s *Solver[T]) solveSparse() error {
	nFeatures := s.model.NFeatures()
	useIntercept := s.model.UseIntercept()
	dst := s.iterate
	if useIntercept {
		dst = s.iterate[:nFeatures]
	}

	s.steps = s.steps[:0]
	s.deltas = s.deltas[:0]
	clear(s.rows)
	s.rows = s.rows[:0]

	end := s.t + s.epochSize
	for ; s.t < end; s.t++ {
		i := s.sampler.Next()
		s.stepT = s.StepT()
		delta := -s.stepT * s.model.GradIFactor(i, s.iterate)
		row := s.model.Features(i)
		if err := row.Validate(nFeatures); err != nil {
			return fmt.Errorf("sgd: features of example %d: %w", i, err)
		}
		s.steps = append(s.steps, s.stepT)
		s.deltas = append(s.deltas, delta)
		s.rows = append(s.rows, row)
		if useIntercept {
			s.iterate[nFeatures] += delta
		}
	}

	if len(s.rows) > 0 {
		s.ops.BatchMultiIncrRows(s.deltas, s.rows, dst)
	}
	for _, step := range s.steps {
		s.prox.Call(s.iterate, step, s.iterate)
	}
	return nil
}
