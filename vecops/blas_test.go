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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBLASConformance(t *testing.T) {
	testConformance[float32](t, BLAS[float32]{})
	testConformance[float64](t, BLAS[float64]{})
}

type weight float64

func TestBLASNamedElementType(t *testing.T) {
	ops := BLAS[weight]{}
	x := []weight{1, 2, 3}
	y := []weight{4, 5, 6}

	assert.Equal(t, weight(32), ops.Dot(x, y))
	assert.Equal(t, weight(6), ops.AbsoluteSum([]weight{-1, 2, -3}))

	ops.MultIncr(2, x, y)
	assert.Equal(t, []weight{6, 9, 12}, y)

	ops.Scale(0.5, y)
	assert.Equal(t, []weight{3, 4.5, 6}, y)
}

func TestBLASZeroLength(t *testing.T) {
	ops := BLAS[float32]{}
	assert.Equal(t, float32(0), ops.Dot(nil, nil))
	assert.Equal(t, float32(0), ops.AbsoluteSum(nil))
	assert.Equal(t, Accum(0), ops.Sum(nil))
	ops.Scale(2, nil)
	ops.MultIncr(2, nil, nil)
}
