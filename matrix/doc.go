// SPDX-License-Identifier: MIT

// Package matrix provides the dense two-dimensional linear-algebra layer used
// by the tensor and decomp packages.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix (offset = i*cols + j) with safe,
//     error-returning accessors and an optional finite-value policy.
//   - Kernels: Mul, Transpose, Scale, Sub, Hadamard, MatVec, Gram and
//     FrobeniusNorm, each with a *Dense fast path and an interface fallback.
//   - KhatriRao / KhatriRaoAll: the column-wise Kronecker product. Rows are
//     ordered row-major over the operands (ia*p + ib), and KhatriRaoAll folds
//     left to right.
//   - Spectral helpers: Jacobi Eigen for symmetric matrices, PinvSym (eigen
//     based pseudo-inverse of a symmetric PSD matrix), Pinv and
//     LeftSingularVectors backed by the gonum SVD.
//
// Errors are package sentinels (errors.go) wrapped once with an operation
// tag; match them with errors.Is.
//
// See example_test.go for usage patterns.
package matrix
