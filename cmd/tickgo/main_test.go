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

package main

import (
	"bytes"
	"testing"

	"github.com/ajroetker/tickgo/vecops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend:")
	assert.Contains(t, out, "Batch workers:")
	assert.Contains(t, out, backendTitle(vecops.CurrentBackend()))
}

func TestBackendTitle(t *testing.T) {
	assert.Equal(t, "Reference", backendTitle(vecops.BackendReference))
	assert.Equal(t, "MKL (mkl)", backendTitle(vecops.BackendMKL))
	assert.Equal(t, "BLAS (blas)", backendTitle(vecops.BackendBLAS))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"dense", []string{"--samples", "50", "--features", "4", "--epochs", "3", "--tol", "0"}},
		{"sparse l1", []string{"--samples", "50", "--features", "30", "--sparse", "--density", "0.2", "--prox", "l1", "--sampler", "perm", "--epochs", "2"}},
		{"float32 l2sq intercept", []string{"--samples", "20", "--features", "3", "--float32", "--prox", "l2sq", "--intercept", "--epochs", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"fit"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, "initial loss")
			assert.Contains(t, out, "rel_dist")
			assert.Contains(t, out, "distance to true weights")
		})
	}
}

func TestFitRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"prox", []string{"--prox", "elastic"}},
		{"sampler", []string{"--sampler", "cyclic"}},
		{"step", []string{"--step", "0"}},
		{"samples", []string{"--samples", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"fit", "--epochs", "1"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}
