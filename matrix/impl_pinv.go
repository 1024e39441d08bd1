// SPDX-License-Identifier: MIT

// Package matrix - pseudo-inverses and leading singular subspaces.
//
// Purpose:
//   - PinvSym: Moore-Penrose inverse of a symmetric positive semi-definite
//     matrix through the in-package Jacobi Eigen routine. This is the normal
//     equations path of CP-ALS (the Hadamard product of Gram matrices).
//   - Pinv: general Moore-Penrose inverse through the gonum SVD.
//   - LeftSingularVectors: leading left singular vectors (HOSVD / HOOI).
//
// Numerical policy:
//   - Spectral values below rcond·max are treated as zero; rank deficiency is
//     never an error. An all-zero input yields an all-zero pseudo-inverse.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opPinvSym  = "PinvSym"
	opPinv     = "Pinv"
	opLeftSing = "LeftSingularVectors"
)

// PinvSym returns the pseudo-inverse of a symmetric PSD matrix G (n×n).
// Implementation:
//   - Stage 1: validate square/symmetric input; compute ‖G‖_F.
//   - Stage 2: Jacobi Eigen G = Q·diag(λ)·Qᵀ with tolerance eps·‖G‖_F.
//   - Stage 3: G⁺ = Q·diag(1/λ_i for λ_i > rcond·max|λ|)·Qᵀ.
//
// Behavior highlights:
//   - Singular or near-singular G never fails; dropped directions contribute zero.
//   - Negative eigenvalues (round-off on a PSD matrix) are dropped with the same cutoff.
//
// Inputs:
//   - g: symmetric matrix.
//   - opts: WithEpsilon, WithRcond, WithMaxRotations.
//
// Returns:
//   - *Dense: n×n symmetric pseudo-inverse.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry (from Eigen validation),
//     ErrMatrixEigenFailed when the rotation budget is exhausted.
//
// Determinism:
//   - Fully deterministic (Jacobi pivot order is fixed).
//
// Complexity:
//   - Time O(rotations·n + n³), Space O(n²).
//
// AI-Hints:
//   - Feed it Gram/Hadamard outputs: those are exactly symmetric.
func PinvSym(g Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(g); err != nil {
		return nil, matrixErrorf(opPinvSym, err)
	}
	if err := ValidateSquare(g); err != nil {
		return nil, matrixErrorf(opPinvSym, err)
	}
	n := g.Rows()
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opPinvSym, err)
	}
	norm, err := FrobeniusNorm(g)
	if err != nil {
		return nil, matrixErrorf(opPinvSym, err)
	}
	if norm == NormZero {
		return res, nil
	}

	eigs, q, err := Eigen(g, o.eps*norm, o.maxRotations*n*n+o.maxRotations)
	if err != nil {
		return nil, matrixErrorf(opPinvSym, err)
	}

	var maxEig float64
	for _, v := range eigs {
		if math.Abs(v) > maxEig {
			maxEig = math.Abs(v)
		}
	}
	cutoff := o.rcond * maxEig

	var (
		i, j, k int
		inv     float64
	)
	for k = 0; k < n; k++ {
		if eigs[k] <= cutoff {
			continue
		}
		inv = 1 / eigs[k]
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				res.data[i*n+j] += q.data[i*n+k] * inv * q.data[j*n+k]
			}
		}
	}

	return res, nil
}

// Pinv returns the Moore-Penrose pseudo-inverse of an r×c matrix (c×r result).
// Implementation:
//   - Stage 1: bridge to gonum and factorize with mat.SVDThin.
//   - Stage 2: A⁺ = V·diag(1/σ_k for σ_k > rcond·σ_max)·Uᵀ.
//
// Errors:
//   - ErrNilMatrix, ErrSVDFailed.
//
// Complexity:
//   - Time O(r·c·min(r,c)), Space O(r·c).
func Pinv(a Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	g, err := toGonum(a)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}

	var svd mat.SVD
	if ok := svd.Factorize(g, mat.SVDThin); !ok {
		return nil, matrixErrorf(opPinv, ErrSVDFailed)
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == NormZero {
		return res, nil
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := o.rcond * values[0]
	var (
		i, j, k int
		inv     float64
	)
	for k = 0; k < len(values); k++ {
		if values[k] <= cutoff {
			break // values are sorted in descending order
		}
		inv = 1 / values[k]
		for i = 0; i < cols; i++ {
			for j = 0; j < rows; j++ {
				res.data[i*rows+j] += v.At(i, k) * inv * u.At(j, k)
			}
		}
	}

	return res, nil
}

// LeftSingularVectors returns the k leading left singular vectors of a (r×k)
// and the matching singular values in descending order.
// When k exceeds min(r, c) the full SVD supplies an orthonormal completion of
// the column space; the extra singular values are zero.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (k < 1 or k > r), ErrSVDFailed.
//
// Complexity:
//   - Time O(r·c·min(r,c)) thin, O(r²·c) full; Space O(r·max(r,c)).
//
// AI-Hints:
//   - The sign of each vector is whatever the SVD backend produced; normalize
//     signs downstream when reproducible output matters.
func LeftSingularVectors(a Matrix, k int) (*Dense, []float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, nil, matrixErrorf(opLeftSing, err)
	}
	rows, cols := a.Rows(), a.Cols()
	if k < 1 || k > rows {
		return nil, nil, matrixErrorf(opLeftSing, ErrDimensionMismatch)
	}
	g, err := toGonum(a)
	if err != nil {
		return nil, nil, matrixErrorf(opLeftSing, err)
	}

	kind := mat.SVDThin
	if k > cols {
		kind = mat.SVDFull
	}
	var svd mat.SVD
	if ok := svd.Factorize(g, kind); !ok {
		return nil, nil, matrixErrorf(opLeftSing, ErrSVDFailed)
	}
	var u mat.Dense
	svd.UTo(&u)
	values := make([]float64, k)
	copy(values, svd.Values(nil))

	res, err := NewDense(rows, k)
	if err != nil {
		return nil, nil, matrixErrorf(opLeftSing, err)
	}
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < k; j++ {
			res.data[i*k+j] = u.At(i, j)
		}
	}

	return res, values, nil
}

// toGonum copies m into a gonum *mat.Dense (row-major, same layout).
func toGonum(m Matrix) (*mat.Dense, error) {
	d, err := denseCopy(m)
	if err != nil {
		return nil, err
	}

	return mat.NewDense(d.r, d.c, d.data), nil
}
