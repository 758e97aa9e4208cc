// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package model

import "errors"

// ErrShape reports features and labels whose sizes disagree.
var ErrShape = errors.New("model: inconsistent shape")
