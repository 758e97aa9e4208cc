// SPDX-License-Identifier: Apache-2.0

package vecops

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch reports operands whose lengths disagree, e.g. Dot on
	// slices of different length or a batch whose alpha and x slices differ.
	ErrLengthMismatch = errors.New("vecops: length mismatch")

	// ErrRowIndex reports a sparse row whose indices are out of range or not
	// strictly increasing.
	ErrRowIndex = errors.New("vecops: invalid sparse row index")

	// ErrDevice is wrapped by every DeviceError.
	ErrDevice = errors.New("vecops: device failure")
)

// DeviceError describes a failed accelerator call (allocation, transfer or
// kernel launch). It unwraps to ErrDevice.
type DeviceError struct {
	Backend string
	Op      string
	Stage   string
	Code    int
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("vecops: %s %s failed at %s (code %d)", e.Backend, e.Op, e.Stage, e.Code)
}

func (e *DeviceError) Unwrap() error { return ErrDevice }

// mismatch panics with ErrLengthMismatch. Primitives have no error return, so
// a contract violation is raised the same way an out-of-range slice would be.
func mismatch(op string, got, want int) {
	panic(fmt.Errorf("%w: %s: got %d, want %d", ErrLengthMismatch, op, got, want))
}

func checkLen(op string, got, want int) {
	if got != want {
		mismatch(op, got, want)
	}
}
