// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"

	"github.com/katalvlaran/lvtensor/matrix"
)

const (
	opMulti     = "MultiModeProduct"
	opMultiInto = "MultiModeProductInto"
)

// ModeMatrix is one step of a multi-mode contraction.
type ModeMatrix struct {
	Matrix matrix.Matrix
	Mode   int
	How    Contraction
}

// MultiModeProduct applies ops in order, each step contracting the output of
// the previous one. Modes always refer to the original mode numbering (a
// contraction changes a dimension, never the order). The whole shape chain is
// validated before any arithmetic. An empty op list returns a copy of t.
func MultiModeProduct(t *Dense, ops []ModeMatrix) (*Dense, error) {
	if t == nil {
		return nil, tensorErrorf(opMulti, ErrNilTensor)
	}
	final, err := chainShape(t.shape, ops)
	if err != nil {
		return nil, tensorErrorf(opMulti, err)
	}
	dst, err := New(final...)
	if err != nil {
		return nil, tensorErrorf(opMulti, err)
	}
	if err = multiModeProduct(dst, t, ops); err != nil {
		return nil, tensorErrorf(opMulti, err)
	}

	return dst, nil
}

// MultiModeProductInto is MultiModeProduct writing the final step into dst.
// Intermediates are allocated.
//
// Errors: those of ModeProductInto for any step, plus ErrShapeMismatch when
// dst does not match the final shape.
func MultiModeProductInto(dst, t *Dense, ops []ModeMatrix) error {
	if dst == nil || t == nil {
		return tensorErrorf(opMultiInto, ErrNilTensor)
	}
	final, err := chainShape(t.shape, ops)
	if err != nil {
		return tensorErrorf(opMultiInto, err)
	}
	if !dst.shape.Equal(final) {
		return tensorErrorf(opMultiInto, fmt.Errorf("dst %v, want %v: %w", dst.shape, final, ErrShapeMismatch))
	}
	if sameStorage(dst, t) {
		return tensorErrorf(opMultiInto, ErrAliasedBuffer)
	}
	if err = multiModeProduct(dst, t, ops); err != nil {
		return tensorErrorf(opMultiInto, err)
	}

	return nil
}

// chainShape validates every step and returns the final shape.
func chainShape(shape Shape, ops []ModeMatrix) (Shape, error) {
	cur := shape.Clone()
	var err error
	for i, op := range ops {
		if cur, err = productShape(cur, op.Matrix, op.Mode, op.How); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	return cur, nil
}

func multiModeProduct(dst, t *Dense, ops []ModeMatrix) error {
	if len(ops) == 0 {
		copy(dst.data, t.data)
		return nil
	}
	cur := t
	var err error
	last := len(ops) - 1
	for i, op := range ops[:last] {
		if cur, err = ModeProduct(cur, op.Matrix, op.Mode, op.How); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	op := ops[last]
	if err = modeProduct(dst, cur, op.Matrix, op.Mode, op.How); err != nil {
		return fmt.Errorf("step %d: %w", last, err)
	}

	return nil
}
