// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package sgd implements stochastic gradient descent over a vecops backend.
//
// A Solver owns the iterate and drives three collaborators: a Model that
// supplies per-example gradients and feature rows, a Prox that applies a
// regularization correction, and a Sampler that picks the next example.
// Each call to Solver.Solve runs one epoch.
//
// Dense models take one gradient step and one proximal step per sampled
// example, using step_t = step / (t + 1):
//
//	iterate += -step_t * grad_i(iterate)
//	iterate  = prox(iterate, step_t)
//
// Sparse models are handled differently. The epoch first collects
// (step_t, -step_t * grad_i_factor, row_i) for every sampled example, then
// applies all feature contributions in a single
// vecops.Ops.BatchMultiIncrRows call, and only then replays the proximal
// operator once per collected step, in sampling order. With an intercept,
// the intercept coordinate is updated immediately as each example is
// sampled. The result is not the same as the interleaved dense schedule;
// tests pin the batched order.
//
// Fit wraps Solve in an outer loop with a relative-distance stopping rule.
package sgd
