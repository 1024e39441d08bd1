// SPDX-License-Identifier: MIT

// Package decomp computes CP (CANDECOMP/PARAFAC) and Tucker decompositions of
// dense N-way tensors (N ≥ 3) by alternating least squares.
//
// Entry points:
//
//	– CP(t, rank, ...Option):            sum of rank one terms, factors d_n×rank plus Weights.
//	– Tucker(t, ranks, ...Option):       orthonormal factors d_n×ranks[n] plus a core (HOOI).
//	– TuckerUniform(t, r, ...Option):    Tucker with the same rank on every mode.
//	– CheckTensor / CheckTensorUniform:  the argument gate both solvers use.
//
// Every solve is independent: it owns its random source (seeded through
// Options.Seed) and shares nothing with other solves, so concurrent calls on
// distinct or shared read-only tensors are safe. Convergence is reported as a
// Status on the Result and, optionally, through a Reporter callback; the
// package never logs.
//
// Conventions:
//
//	– Modes are 0-based; tensors and matrices are row-major.
//	– Khatri-Rao products over "all modes but n" fold left in ascending mode order,
//	  which matches the column order of tensor.RowUnfold(T, n).
//	– Sign normalization (on by default) makes the largest-magnitude entry of
//	  every factor column positive without changing the reconstruction.
//
// Errors (sentinel):
//
//	– ErrNilTensor, ErrTensorOrder, ErrRankLength, ErrRankOutOfRange, ErrBadInitializer.
//
// Example usage:
//
//	res, err := decomp.CP(x, 2, decomp.WithSeed(7), decomp.WithTol(1e-10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Status, res.Error, res.Iterations)
package decomp
