// SPDX-License-Identifier: MIT

// Package matrix - Khatri-Rao (column-wise Kronecker) products.
//
// Purpose:
//   - Build the design matrix of CP alternating least squares from the factors
//     of all modes but one.
//
// Row ordering contract:
//   - KhatriRao(A, B) has row ia*p + ib for A (m×k) and B (p×k): the LAST
//     operand varies fastest. This is the row-major order of an unfolding, so
//     KhatriRaoAll(F_0, .., F_{n-1}, F_{n+1}, .., F_{N-1}) lines up with the
//     columns of tensor.RowUnfold(t, n).

package matrix

const (
	opKhatriRao    = "KhatriRao"
	opKhatriRaoAll = "KhatriRaoAll"
)

// KhatriRao computes the column-wise Kronecker product A ⊙ B.
// Implementation:
//   - Stage 1: validate non-nil operands and equal column counts.
//   - Stage 2: for every row pair (ia, ib), write A[ia,:]∘B[ib,:] into row ia*p+ib.
//
// Behavior highlights:
//   - Column i of the result is kron(A[:,i], B[:,i]).
//   - Row-major writes: the output buffer is filled strictly in order.
//
// Inputs:
//   - a: m×k matrix.
//   - b: p×k matrix.
//
// Returns:
//   - *Dense: (m·p)×k matrix.
//
// Errors:
//   - ErrNilMatrix (nil operand), ErrDimensionMismatch (column counts differ).
//
// Determinism:
//   - Fixed ia→ib→col order.
//
// Complexity:
//   - Time O(m*p*k), Space O(m*p*k).
//
// AI-Hints:
//   - For more than two operands use KhatriRaoAll; it folds left so the first
//     operand varies slowest.
func KhatriRao(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opKhatriRao, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opKhatriRao, err)
	}
	if err := ValidateSameCols(a, b); err != nil {
		return nil, matrixErrorf(opKhatriRao, err)
	}

	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opKhatriRao, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opKhatriRao, err)
	}

	m, p, k := da.r, db.r, da.c
	res, err := NewDense(m*p, k)
	if err != nil {
		return nil, matrixErrorf(opKhatriRao, err)
	}

	var (
		ia, ib, col      int
		baseA, baseB, at int
		av               float64
	)
	for ia = 0; ia < m; ia++ {
		baseA = ia * k
		for ib = 0; ib < p; ib++ {
			baseB = ib * k
			for col = 0; col < k; col++ {
				av = da.data[baseA+col]
				res.data[at] = av * db.data[baseB+col]
				at++
			}
		}
	}

	return res, nil
}

// KhatriRaoAll folds KhatriRao left to right: ((m0 ⊙ m1) ⊙ m2) ⊙ ...
// A single operand is returned as a *Dense copy.
//
// Errors:
//   - ErrEmptyOperands (no operands), plus every KhatriRao error.
//
// Complexity:
//   - Time O(k·∏rows), Space O(k·∏rows) for the result plus one intermediate.
func KhatriRaoAll(ms ...Matrix) (*Dense, error) {
	if len(ms) == 0 {
		return nil, matrixErrorf(opKhatriRaoAll, ErrEmptyOperands)
	}
	if err := ValidateNotNil(ms[0]); err != nil {
		return nil, matrixErrorf(opKhatriRaoAll, err)
	}
	acc, err := denseCopy(ms[0])
	if err != nil {
		return nil, matrixErrorf(opKhatriRaoAll, err)
	}
	for _, next := range ms[1:] {
		if acc, err = KhatriRao(acc, next); err != nil {
			return nil, matrixErrorf(opKhatriRaoAll, err)
		}
	}

	return acc, nil
}

// asDense returns m itself when it is *Dense, or a dense copy otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}

	return denseCopy(m)
}
