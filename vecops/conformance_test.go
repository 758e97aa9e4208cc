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
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// Relative tolerances for comparing a backend against Reference.
const (
	tol32 = 1e-6
	tol64 = 1e-12
)

func tolFor[T Float]() float64 {
	if is32[T]() {
		return tol32
	}
	return tol64
}

// relClose reports whether a and b agree within a relative tolerance, with
// values below 1 compared absolutely.
func relClose(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

func requireClose[T Float](t *testing.T, want, got T, tol float64, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, relClose(float64(want), float64(got), tol),
		"want %v, got %v (tol %g) %s", want, got, tol, fmt.Sprint(msgAndArgs...))
}

// requireDotClose compares dot products against the summation error bound
// tol * sqrt(n) * Σ|x[i]*y[i]|, which stays meaningful under cancellation and
// allows for backends that sum in a different order.
func requireDotClose[T Float](t *testing.T, want, got T, x, y []T, tol float64) {
	t.Helper()
	var bound float64
	for i := range x {
		bound += math.Abs(float64(x[i]) * float64(y[i]))
	}
	diff := math.Abs(float64(want) - float64(got))
	require.LessOrEqualf(t, diff, sumTol(tol, len(x))*math.Max(1, bound), "want %v, got %v", want, got)
}

// sumTol widens tol for a reduction over n terms.
func sumTol(tol float64, n int) float64 {
	return tol * 4 * math.Sqrt(float64(max(1, n)))
}

func requireSliceClose[T Float](t *testing.T, want, got []T, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		requireClose(t, want[i], got[i], tol, "index ", i)
	}
}

func randVec[T Float](r *rand.Rand, n int) []T {
	v := make([]T, n)
	for i := range v {
		v[i] = T(r.Float64()*2 - 1)
	}
	return v
}

func randVecs[T Float](r *rand.Rand, b, n int) [][]T {
	vs := make([][]T, b)
	for i := range vs {
		vs[i] = randVec[T](r, n)
	}
	return vs
}

// sizes covers empty, sub-lane and multi-lane lengths with tails.
var sizes = []int{0, 1, 3, 7, 8, 16, 33, 100, 1027}

// testConformance checks every primitive of ops against Reference.
func testConformance[T Float](t *testing.T, ops Ops[T]) {
	ref := Reference[T]{Workers: 1}
	tol := tolFor[T]()
	r := rand.New(rand.NewPCG(7, uint64(len(ops.Name()))))

	for _, n := range sizes {
		t.Run(fmt.Sprintf("%s/n=%d", ops.Name(), n), func(t *testing.T) {
			x := randVec[T](r, n)
			y := randVec[T](r, n)

			requireDotClose(t, ref.Dot(x, y), ops.Dot(x, y), x, y, tol)
			requireClose(t, ref.Sum(x), ops.Sum(x), tol, "Sum")
			requireClose(t, ref.AbsoluteSum(x), ops.AbsoluteSum(x), sumTol(tol, n), "AbsoluteSum")

			want := append([]T(nil), x...)
			got := append([]T(nil), x...)
			ref.Scale(-1.5, want)
			ops.Scale(-1.5, got)
			requireSliceClose(t, want, got, tol)

			ref.Set(0.25, want)
			ops.Set(0.25, got)
			requireSliceClose(t, want, got, tol)

			want = append([]T(nil), y...)
			got = append([]T(nil), y...)
			ref.MultIncr(0.75, x, want)
			ops.MultIncr(0.75, x, got)
			requireSliceClose(t, want, got, tol)
		})
	}

	t.Run(ops.Name()+"/batch", func(t *testing.T) {
		const n = 1100
		for _, b := range []int{0, 1, 5, 9, 64} {
			x := randVec[T](r, n)
			ys := randVecs[T](r, b, n)
			alpha := randVec[T](r, b)

			wantDots := ref.BatchDot(x, ys)
			gotDots := ops.BatchDot(x, ys)
			require.Len(t, gotDots, b)
			for i := range ys {
				requireDotClose(t, wantDots[i], gotDots[i], x, ys[i], tol)
			}

			// Each coordinate receives b contributions; allow b roundings.
			want := append([]T(nil), x...)
			got := append([]T(nil), x...)
			ref.BatchMultiIncr(alpha, ys, want)
			ops.BatchMultiIncr(alpha, ys, got)
			requireSliceClose(t, want, got, tol*float64(max(1, b)))
		}
	})
}

func TestReferenceConformance(t *testing.T) {
	testConformance[float32](t, Reference[float32]{})
	testConformance[float64](t, Reference[float64]{})
}

func TestDefaultConformance(t *testing.T) {
	testConformance(t, New[float32]())
	testConformance(t, New[float64]())
}
