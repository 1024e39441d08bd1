// SPDX-License-Identifier: MIT

package decomp

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the decomposition entry points.
// Numerical degeneracy and non-convergence are never errors; see Status.
var (
	// ErrNilTensor indicates a nil input tensor.
	ErrNilTensor = errors.New("decomp: tensor is nil")

	// ErrTensorOrder indicates a tensor with fewer than three modes.
	// Scalars, vectors and matrices are out of scope.
	ErrTensorOrder = errors.New("decomp: tensor must have at least 3 modes")

	// ErrRankLength indicates a per-mode rank list whose length differs from the tensor order.
	ErrRankLength = errors.New("decomp: rank list length does not match tensor order")

	// ErrRankOutOfRange indicates a rank outside [1, d_n] for some mode n.
	ErrRankOutOfRange = errors.New("decomp: rank out of range")

	// ErrBadInitializer indicates an initializer that returned the wrong number
	// of factors, a nil factor or a factor of the wrong shape.
	ErrBadInitializer = errors.New("decomp: initializer returned malformed factors")
)

// decompErrorf wraps err with an operation tag, preserving it for errors.Is.
func decompErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
