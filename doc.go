// Package lvtensor computes low-rank decompositions of dense N-way arrays:
// CANDECOMP/PARAFAC (a sum of rank-one terms) and Tucker (orthonormal factors
// around a small core), both by alternating least squares.
//
// What is inside?
//
//	• Dense row-major matrices with the kernels ALS needs: Mul, Gram,
//	  Hadamard, Khatri-Rao, symmetric and SVD pseudo-inverses
//	• Dense N-way tensors: mode unfolding and folding, tensor-times-matrix in
//	  both orientations, chained multi-mode products into caller buffers
//	• CP-ALS with two least-squares strategies, Tucker by HOOI, seeded
//	  initializers, sign normalization and convergence reporting
//	• A small CLI that builds synthetic tensors and runs seeded restarts
//
// Why lvtensor?
//
//   - Explicit shapes and sentinel errors; nothing panics on bad input
//   - Deterministic for a seed, reentrant, no package-level state
//   - Every mode convention is written down: 0-based modes, row-major data,
//     left-fold Khatri-Rao products in ascending mode order
//
// Packages:
//
//	matrix/    — Dense matrix, validators, linear algebra kernels, Khatri-Rao, pseudo-inverses
//	tensor/    — Dense tensor, Unfold/Fold, ModeProduct, MultiModeProduct
//	decomp/    — CP, Tucker, CheckTensor, initializers, Result
//	synth/     — synthetic CP and Tucker tensors with known factors
//	envconfig/ — LVTENSOR_* environment defaults
//	cli/       — cobra commands behind cmd/lvtensor
//
// Quick example:
//
//	x, _, _ := synth.CP([]int{10, 20, 30}, 2, 42)
//	res, err := decomp.CP(x, 2)
//	// res.Factors[n] is d_n×2, res.Error is ‖x − x̂‖/‖x‖
//
//	go install github.com/katalvlaran/lvtensor/cmd/lvtensor@latest
package lvtensor
