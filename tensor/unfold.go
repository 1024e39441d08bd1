// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"

	"github.com/katalvlaran/lvtensor/matrix"
)

const (
	opUnfold   = "Unfold"
	opFold     = "Fold"
	opFoldInto = "FoldInto"
)

// Unfold matricizes t: rowModes index the rows, colModes the columns.
//
// The result has shape (∏ d over rowModes) × (∏ d over colModes). Entry (r, c)
// is the element whose coordinates, listed in the order rowModes ++ colModes,
// unravel row-major to (r, c): the last listed mode varies fastest. Either
// group may be empty, giving a single row or column.
//
// Errors:
//   - ErrNilTensor.
//   - ErrShapeMismatch when the groups do not list every mode exactly once,
//     or a mode lies outside [0, N).
//
// The result is always a fresh copy.
func Unfold(t *Dense, rowModes, colModes []int) (*matrix.Dense, error) {
	if t == nil {
		return nil, tensorErrorf(opUnfold, ErrNilTensor)
	}
	perm, err := modeOrder(len(t.shape), rowModes, colModes)
	if err != nil {
		return nil, tensorErrorf(opUnfold, err)
	}
	out, err := matrix.NewDense(t.shape.product(rowModes), t.shape.product(colModes))
	if err != nil {
		return nil, tensorErrorf(opUnfold, err)
	}
	buf := out.RawData()
	walk(t.shape, t.strides, perm, func(flat, off int) {
		buf[flat] = t.data[off]
	})

	return out, nil
}

// RowUnfold is Unfold(t, [k], other modes ascending): a d_k × ∏_{m≠k} d_m matrix.
func RowUnfold(t *Dense, k int) (*matrix.Dense, error) {
	if t == nil {
		return nil, tensorErrorf(opUnfold, ErrNilTensor)
	}
	if k < 0 || k >= len(t.shape) {
		return nil, tensorErrorf(opUnfold, fmt.Errorf("mode %d: %w", k, ErrModeOutOfRange))
	}

	return Unfold(t, []int{k}, otherModes(len(t.shape), k))
}

// ColUnfold is Unfold(t, other modes ascending, [k]): a ∏_{m≠k} d_m × d_k matrix.
func ColUnfold(t *Dense, k int) (*matrix.Dense, error) {
	if t == nil {
		return nil, tensorErrorf(opUnfold, ErrNilTensor)
	}
	if k < 0 || k >= len(t.shape) {
		return nil, tensorErrorf(opUnfold, fmt.Errorf("mode %d: %w", k, ErrModeOutOfRange))
	}

	return Unfold(t, otherModes(len(t.shape), k), []int{k})
}

// Fold is the inverse of Unfold: it rebuilds a tensor of the given shape
// from m, which must have been laid out with the same rowModes/colModes.
// Fold(Unfold(t, r, c), t.Shape(), r, c) reproduces t exactly.
func Fold(m *matrix.Dense, shape []int, rowModes, colModes []int) (*Dense, error) {
	t, err := New(shape...)
	if err != nil {
		return nil, tensorErrorf(opFold, err)
	}
	if err = FoldInto(t, m, rowModes, colModes); err != nil {
		return nil, tensorErrorf(opFold, err)
	}

	return t, nil
}

// FoldRow inverts RowUnfold.
func FoldRow(m *matrix.Dense, shape []int, k int) (*Dense, error) {
	if k < 0 || k >= len(shape) {
		return nil, tensorErrorf(opFold, fmt.Errorf("mode %d: %w", k, ErrModeOutOfRange))
	}

	return Fold(m, shape, []int{k}, otherModes(len(shape), k))
}

// FoldInto scatters m into dst (every element of dst is overwritten).
// Errors:
//   - ErrNilTensor, matrix.ErrNilMatrix.
//   - ErrShapeMismatch when the mode groups are invalid for dst or when the
//     shape of m differs from the unfolding shape of dst.
func FoldInto(dst *Dense, m *matrix.Dense, rowModes, colModes []int) error {
	if dst == nil {
		return tensorErrorf(opFoldInto, ErrNilTensor)
	}
	if m == nil {
		return tensorErrorf(opFoldInto, matrix.ErrNilMatrix)
	}
	perm, err := modeOrder(len(dst.shape), rowModes, colModes)
	if err != nil {
		return tensorErrorf(opFoldInto, err)
	}
	rows, cols := m.Shape()
	if rows != dst.shape.product(rowModes) || cols != dst.shape.product(colModes) {
		return tensorErrorf(opFoldInto, fmt.Errorf("matrix %dx%d for shape %v: %w", rows, cols, dst.shape, ErrShapeMismatch))
	}
	src := m.RawData()
	walk(dst.shape, dst.strides, perm, func(flat, off int) {
		dst.data[off] = src[flat]
	})

	return nil
}

// walk visits every element once in the row-major order of the permuted
// modes and calls visit(flat, off): flat counts 0,1,2,… and off is the
// element's offset in the tensor buffer.
func walk(shape Shape, strides []int, perm []int, visit func(flat, off int)) {
	n := len(perm)
	idx := make([]int, n)
	total := shape.NumElements()
	off := 0
	var k, mode int
	for flat := 0; flat < total; flat++ {
		visit(flat, off)
		for k = n - 1; k >= 0; k-- {
			mode = perm[k]
			idx[k]++
			off += strides[mode]
			if idx[k] < shape[mode] {
				break
			}
			off -= strides[mode] * shape[mode]
			idx[k] = 0
		}
	}
}

// modeOrder validates the two groups and returns rowModes ++ colModes.
func modeOrder(n int, rowModes, colModes []int) ([]int, error) {
	if len(rowModes)+len(colModes) != n {
		return nil, fmt.Errorf("%d+%d modes for an order-%d tensor: %w", len(rowModes), len(colModes), n, ErrShapeMismatch)
	}
	perm := make([]int, 0, n)
	perm = append(perm, rowModes...)
	perm = append(perm, colModes...)
	seen := make([]bool, n)
	for _, m := range perm {
		if m < 0 || m >= n {
			return nil, fmt.Errorf("mode %d: %w", m, ErrShapeMismatch)
		}
		if seen[m] {
			return nil, fmt.Errorf("mode %d repeated: %w", m, ErrShapeMismatch)
		}
		seen[m] = true
	}

	return perm, nil
}

// otherModes returns 0..n-1 without k, ascending.
func otherModes(n, k int) []int {
	out := make([]int, 0, n-1)
	for m := 0; m < n; m++ {
		if m != k {
			out = append(out, m)
		}
	}

	return out
}
