// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vecops

import (
	"os"
	"strconv"
	"sync"
)

// Backend identifies a vector-operations implementation.
type Backend int

const (
	// BackendReference is the portable pure Go implementation.
	BackendReference Backend = iota

	// BackendMKL delegates to Intel MKL through cgo.
	BackendMKL

	// BackendBLAS delegates to the gonum BLAS interface.
	BackendBLAS

	// BackendCUDA delegates to cuBLAS, one device round trip per call.
	BackendCUDA
)

// String returns a human-readable name for the backend.
func (b Backend) String() string {
	switch b {
	case BackendReference:
		return "reference"
	case BackendMKL:
		return "mkl"
	case BackendBLAS:
		return "blas"
	case BackendCUDA:
		return "cuda"
	default:
		return "unknown"
	}
}

// CurrentBackend returns the backend compiled into this binary.
func CurrentBackend() Backend {
	return Selected
}

// CurrentName returns the name of the backend compiled into this binary.
func CurrentName() string {
	return Selected.String()
}

const (
	// WorkersEnv overrides the number of workers used by batched operations.
	WorkersEnv = "TICKGO_BATCH_WORKERS"

	// defaultWorkers is the fixed worker count of batched operations when
	// WorkersEnv is unset.
	defaultWorkers = 4

	// MinParallelBatch is the smallest batch for which batched operations
	// start a worker group.
	MinParallelBatch = 8

	// MinParallelChunk is the smallest destination slice handed to a single
	// worker of BatchMultiIncr.
	MinParallelChunk = 256
)

var (
	workersOnce sync.Once
	workers     int
)

// DefaultWorkers returns the worker count used by batched operations of a
// zero-valued backend. It reads WorkersEnv once; a missing, unparsable or
// non-positive value yields the built-in default of 4.
func DefaultWorkers() int {
	workersOnce.Do(func() {
		workers = parseWorkers(os.Getenv(WorkersEnv))
	})
	return workers
}

func parseWorkers(val string) int {
	if val == "" {
		return defaultWorkers
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultWorkers
	}
	return n
}

// resolveWorkers maps a backend's configured worker count to an effective one.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return DefaultWorkers()
}
