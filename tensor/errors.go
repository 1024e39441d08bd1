// SPDX-License-Identifier: MIT

package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors. Kernels wrap them once with an operation tag; match with errors.Is.
var (
	// ErrNilTensor indicates a nil *Dense argument.
	ErrNilTensor = errors.New("tensor: nil tensor")

	// ErrBadShape indicates an empty shape or a non-positive dimension.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch indicates incompatible shapes: data length, unfolding
	// mode sets, matrix operands or destination buffers.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrModeOutOfRange indicates a mode outside [0, NDims()).
	ErrModeOutOfRange = errors.New("tensor: mode out of range")

	// ErrIndexOutOfRange indicates a multi-index outside the tensor bounds.
	ErrIndexOutOfRange = errors.New("tensor: index out of range")

	// ErrAliasedBuffer indicates a destination buffer that shares storage with an input.
	ErrAliasedBuffer = errors.New("tensor: destination aliases input")

	// ErrUnknownContraction indicates a Contraction value outside the declared set.
	ErrUnknownContraction = errors.New("tensor: unknown contraction")
)

// tensorErrorf wraps err with an operation tag, preserving it for errors.Is.
func tensorErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
