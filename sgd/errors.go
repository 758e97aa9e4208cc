// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package sgd

import "errors"

var (
	// ErrNonPositiveStep reports a base step size <= 0, for which the
	// schedule step / (t + 1) is undefined.
	ErrNonPositiveStep = errors.New("sgd: step must be positive")

	// ErrNilModel, ErrNilProx and ErrNilSampler report a missing collaborator.
	ErrNilModel   = errors.New("sgd: nil model")
	ErrNilProx    = errors.New("sgd: nil prox")
	ErrNilSampler = errors.New("sgd: nil sampler")

	// ErrIterateSize reports an iterate whose length is not the model's
	// feature count plus one when an intercept is used.
	ErrIterateSize = errors.New("sgd: iterate has wrong size")

	// ErrNegativeEpoch reports a negative epoch size or start iteration.
	ErrNegativeEpoch = errors.New("sgd: negative epoch size or iteration")
)
