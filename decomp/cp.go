// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

const opCP = "CP"

// CP computes a rank-R CANDECOMP/PARAFAC decomposition of t by alternating
// least squares.
//
// Implementation:
//   - Stage 1: CheckTensorUniform(t, rank); unfold T once per mode (T is fixed).
//   - Stage 2: factors from Options.Init (RandomInit by default, seeded).
//   - Stage 3: each sweep updates modes 0..N-1 in ascending order. With
//     KR = A_{m_0} ⊙ A_{m_1} ⊙ … (m ≠ n, ascending, left fold):
//     NormalEquations: A_n = U_n·KR·pinv(⊛_{m≠n} A_mᵀA_m),
//     LeastSquares:    A_n = U_n·pinv(KRᵀ).
//     Later modes of the same sweep use the fresh A_n.
//   - Stage 4: relative error from the direct reconstruction; stop on
//     convergence or the sweep cap.
//   - Stage 5: optional column normalization into Weights, then optional
//     sign normalization.
//
// Behavior highlights:
//   - Singular Gram products never fail: the pseudo-inverse drops null directions.
//   - Non-convergence is reported through Result.Status, not an error.
//
// Errors:
//   - ErrNilTensor, ErrTensorOrder, ErrRankOutOfRange, ErrBadInitializer,
//     plus kernel errors wrapped with the sweep number.
//
// Complexity:
//   - Per sweep O(N·R·∏d) time, O(R·∏d) extra space for the Khatri-Rao products.
func CP(t *tensor.Dense, rank int, opts ...Option) (*Result, error) {
	o := gatherOptions(opts)
	n, err := CheckTensorUniform(t, rank)
	if err != nil {
		return nil, decompErrorf(opCP, err)
	}
	ranks := ExpandRank(rank, n)

	unfolded := make([]*matrix.Dense, n)
	for k := 0; k < n; k++ {
		if unfolded[k], err = tensor.RowUnfold(t, k); err != nil {
			return nil, decompErrorf(opCP, err)
		}
	}

	initFn := o.Init
	if initFn == nil {
		initFn = RandomInit
	}
	factors, err := initialize(initFn, t, ranks, o.Seed)
	if err != nil {
		return nil, decompErrorf(opCP, err)
	}
	grams := make([]*matrix.Dense, n)
	for k, a := range factors {
		if grams[k], err = matrix.Gram(a); err != nil {
			return nil, decompErrorf(opCP, err)
		}
	}

	normT := t.Norm()
	sweep := func() (float64, error) {
		for k := 0; k < n; k++ {
			f, err := cpUpdate(o, unfolded[k], factors, grams, k)
			if err != nil {
				return 0, fmt.Errorf("mode %d: %w", k, err)
			}
			factors[k] = f
			if grams[k], err = matrix.Gram(f); err != nil {
				return 0, fmt.Errorf("mode %d: %w", k, err)
			}
		}
		approx, err := cpReconstruct(factors, nil)
		if err != nil {
			return 0, err
		}

		return relativeError(t, approx, normT)
	}

	tr, err := runALS(o, sweep)
	if err != nil {
		return nil, decompErrorf(opCP, err)
	}

	res := &Result{
		Factors:    factors,
		Weights:    unitWeights(rank),
		Error:      tr.err,
		Iterations: tr.iters,
		Status:     tr.status,
		History:    tr.history,
	}
	if o.NormalizeFactors {
		normalizeColumns(res)
	}
	if o.NormalizeSigns {
		res.NormalizeSigns()
	}

	return res, nil
}

// cpUpdate solves the least-squares problem of mode k against the current factors.
func cpUpdate(o Options, unfolded *matrix.Dense, factors, grams []*matrix.Dense, k int) (*matrix.Dense, error) {
	rest := others(len(factors), k)
	sel := make([]matrix.Matrix, len(rest))
	for i, m := range rest {
		sel[i] = factors[m]
	}
	kr, err := matrix.KhatriRaoAll(sel...)
	if err != nil {
		return nil, err
	}

	switch o.Solver {
	case LeastSquares:
		krT, err := matrix.Transpose(kr)
		if err != nil {
			return nil, err
		}
		p, err := matrix.Pinv(krT, matrix.WithRcond(o.Rcond))
		if err != nil {
			return nil, err
		}

		return matrix.Mul(unfolded, p)

	default:
		g := grams[rest[0]]
		for _, m := range rest[1:] {
			if g, err = matrix.Hadamard(g, grams[m]); err != nil {
				return nil, err
			}
		}
		p, err := matrix.PinvSym(g, matrix.WithRcond(o.Rcond))
		if err != nil {
			return nil, err
		}
		mttkrp, err := matrix.Mul(unfolded, kr)
		if err != nil {
			return nil, err
		}

		return matrix.Mul(mttkrp, p)
	}
}

// unitWeights returns r unit weights.
func unitWeights(r int) []float64 {
	w := make([]float64, r)
	for i := range w {
		w[i] = 1
	}

	return w
}

// normalizeColumns rescales every CP factor column to unit norm and moves the
// norms into Weights. Zero columns stay zero and zero their weight.
func normalizeColumns(res *Result) {
	for _, a := range res.Factors {
		rows, cols := a.Shape()
		data := a.RawData()
		var i, j int
		for j = 0; j < cols; j++ {
			var sum float64
			for i = 0; i < rows; i++ {
				sum += data[i*cols+j] * data[i*cols+j]
			}
			norm := math.Sqrt(sum)
			res.Weights[j] *= norm
			if norm == 0 {
				continue
			}
			for i = 0; i < rows; i++ {
				data[i*cols+j] /= norm
			}
		}
	}
}
