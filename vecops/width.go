// SPDX-License-Identifier: Apache-2.0

package vecops

import "unsafe"

// Accelerated backends delegate to libraries that have one routine per
// floating-point width. These helpers view a []T as the matching concrete
// slice without copying; T may be a named type whose underlying type is
// float32 or float64.

// is32 reports whether T is 4 bytes wide.
func is32[T Float]() bool {
	var zero T
	return unsafe.Sizeof(zero) == 4
}

func f32s[T Float](x []T) []float32 {
	if len(x) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(x))), len(x))
}

func f64s[T Float](x []T) []float64 {
	if len(x) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(x))), len(x))
}
