// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"

	"github.com/katalvlaran/lvtensor/matrix"
)

const (
	opModeProduct     = "ModeProduct"
	opModeProductInto = "ModeProductInto"
	opProductShape    = "ProductShape"
)

// Contraction selects which axis of the matrix operand is summed against
// the contracted tensor mode.
type Contraction int

const (
	// ContractMatrixCols contracts the columns of M (k × d_n) with mode n:
	// out[.., j, ..] = Σ_i M[j, i]·T[.., i, ..]. This is the classical T ×_n M.
	ContractMatrixCols Contraction = iota

	// ContractMatrixRows contracts the rows of M (d_n × k) with mode n:
	// out[.., j, ..] = Σ_i M[i, j]·T[.., i, ..], i.e. T ×_n Mᵀ. Projecting
	// onto a factor matrix uses this orientation.
	ContractMatrixRows
)

// String implements fmt.Stringer.
func (c Contraction) String() string {
	switch c {
	case ContractMatrixCols:
		return "cols"
	case ContractMatrixRows:
		return "rows"
	default:
		return fmt.Sprintf("Contraction(%d)", int(c))
	}
}

// ProductShape returns the shape of ModeProduct(t, m, mode, how) without computing it.
// Errors: ErrNilTensor, matrix.ErrNilMatrix, ErrModeOutOfRange,
// ErrUnknownContraction, ErrShapeMismatch.
func ProductShape(t *Dense, m matrix.Matrix, mode int, how Contraction) (Shape, error) {
	if t == nil {
		return nil, tensorErrorf(opProductShape, ErrNilTensor)
	}
	out, err := productShape(t.shape, m, mode, how)
	if err != nil {
		return nil, tensorErrorf(opProductShape, err)
	}

	return out, nil
}

// productShape validates one contraction step against shape and returns the
// output shape (shape with d_mode replaced by the free matrix dimension).
func productShape(shape Shape, m matrix.Matrix, mode int, how Contraction) (Shape, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, err
	}
	if mode < 0 || mode >= len(shape) {
		return nil, fmt.Errorf("mode %d of %d: %w", mode, len(shape), ErrModeOutOfRange)
	}
	var aligned, free int
	switch how {
	case ContractMatrixCols:
		aligned, free = m.Cols(), m.Rows()
	case ContractMatrixRows:
		aligned, free = m.Rows(), m.Cols()
	default:
		return nil, fmt.Errorf("%v: %w", how, ErrUnknownContraction)
	}
	if aligned != shape[mode] {
		return nil, fmt.Errorf("matrix %dx%d (%v) against d_%d=%d: %w",
			m.Rows(), m.Cols(), how, mode, shape[mode], ErrShapeMismatch)
	}
	out := shape.Clone()
	out[mode] = free

	return out, nil
}

// ModeProduct contracts mode `mode` of t against m and returns a new tensor.
//
// The output has the shape of t with d_mode replaced by the free dimension of
// m (Rows for ContractMatrixCols, Cols for ContractMatrixRows).
// The input tensor is not modified.
//
// Errors: ErrNilTensor, matrix.ErrNilMatrix, ErrModeOutOfRange,
// ErrUnknownContraction, ErrShapeMismatch.
//
// Complexity: O(∏d · k) time, O(∏d + k·∏_{m≠n} d_m) space for the unfoldings.
func ModeProduct(t *Dense, m matrix.Matrix, mode int, how Contraction) (*Dense, error) {
	if t == nil {
		return nil, tensorErrorf(opModeProduct, ErrNilTensor)
	}
	shape, err := productShape(t.shape, m, mode, how)
	if err != nil {
		return nil, tensorErrorf(opModeProduct, err)
	}
	dst, err := New(shape...)
	if err != nil {
		return nil, tensorErrorf(opModeProduct, err)
	}
	if err = modeProduct(dst, t, m, mode, how); err != nil {
		return nil, tensorErrorf(opModeProduct, err)
	}

	return dst, nil
}

// ModeProductInto is ModeProduct writing into caller storage.
//
// Errors, in addition to those of ModeProduct:
//   - ErrShapeMismatch when dst does not have the output shape.
//   - ErrAliasedBuffer when dst shares storage with t.
func ModeProductInto(dst, t *Dense, m matrix.Matrix, mode int, how Contraction) error {
	if dst == nil || t == nil {
		return tensorErrorf(opModeProductInto, ErrNilTensor)
	}
	shape, err := productShape(t.shape, m, mode, how)
	if err != nil {
		return tensorErrorf(opModeProductInto, err)
	}
	if !dst.shape.Equal(shape) {
		return tensorErrorf(opModeProductInto, fmt.Errorf("dst %v, want %v: %w", dst.shape, shape, ErrShapeMismatch))
	}
	if sameStorage(dst, t) {
		return tensorErrorf(opModeProductInto, ErrAliasedBuffer)
	}
	if err = modeProduct(dst, t, m, mode, how); err != nil {
		return tensorErrorf(opModeProductInto, err)
	}

	return nil
}

// modeProduct computes the contraction on validated operands:
// RowUnfold(out, mode) = M · RowUnfold(t, mode) for ContractMatrixCols
// and Mᵀ · RowUnfold(t, mode) for ContractMatrixRows.
func modeProduct(dst, t *Dense, m matrix.Matrix, mode int, how Contraction) error {
	unfolded, err := RowUnfold(t, mode)
	if err != nil {
		return err
	}
	left := m
	if how == ContractMatrixRows {
		if left, err = matrix.Transpose(m); err != nil {
			return err
		}
	}
	prod, err := matrix.Mul(left, unfolded)
	if err != nil {
		return err
	}

	return FoldInto(dst, prod, []int{mode}, otherModes(len(dst.shape), mode))
}

// sameStorage reports whether a and b share a backing buffer. Tensors always
// own their whole buffer, so comparing the first element address suffices.
func sameStorage(a, b *Dense) bool {
	return a == b || (len(a.data) > 0 && len(b.data) > 0 && &a.data[0] == &b.data[0])
}
