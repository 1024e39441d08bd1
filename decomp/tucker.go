// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

const (
	opTucker        = "Tucker"
	opTuckerUniform = "TuckerUniform"
)

// Tucker computes a Tucker decomposition with per-mode ranks by higher-order
// orthogonal iteration (HOOI).
//
// Implementation:
//   - Stage 1: CheckTensor(t, ranks).
//   - Stage 2: factors from Options.Init (SVDInit, i.e. HOSVD, by default).
//   - Stage 3: each sweep, for n ascending: Y = T ×_{m≠n} A_mᵀ, then A_n is
//     the leading ranks[n] left singular vectors of RowUnfold(Y, n).
//   - Stage 4: core G = T ×_all A_mᵀ; error from the reconstruction G ×_all A_m.
//   - Stage 5: optional sign normalization (columns flipped, core slices negated).
//
// Solver and NormalizeFactors do not apply; factors are orthonormal.
//
// Errors:
//   - ErrNilTensor, ErrTensorOrder, ErrRankLength, ErrRankOutOfRange,
//     ErrBadInitializer, plus kernel errors wrapped with the sweep number.
func Tucker(t *tensor.Dense, ranks []int, opts ...Option) (*Result, error) {
	o := gatherOptions(opts)
	n, err := CheckTensor(t, ranks)
	if err != nil {
		return nil, decompErrorf(opTucker, err)
	}
	ranks = append([]int(nil), ranks...)

	initFn := o.Init
	if initFn == nil {
		initFn = SVDInit
	}
	factors, err := initialize(initFn, t, ranks, o.Seed)
	if err != nil {
		return nil, decompErrorf(opTucker, err)
	}

	var core *tensor.Dense
	normT := t.Norm()
	sweep := func() (float64, error) {
		var (
			y, approx *tensor.Dense
			yk        *matrix.Dense
			err       error
		)
		for k := 0; k < n; k++ {
			if y, err = tensor.MultiModeProduct(t, projection(factors, k)); err != nil {
				return 0, fmt.Errorf("mode %d: %w", k, err)
			}
			if yk, err = tensor.RowUnfold(y, k); err != nil {
				return 0, fmt.Errorf("mode %d: %w", k, err)
			}
			if factors[k], _, err = matrix.LeftSingularVectors(yk, ranks[k]); err != nil {
				return 0, fmt.Errorf("mode %d: %w", k, err)
			}
		}
		if core, err = tensor.MultiModeProduct(t, projection(factors, -1)); err != nil {
			return 0, err
		}
		if approx, err = tuckerReconstruct(core, factors); err != nil {
			return 0, err
		}

		return relativeError(t, approx, normT)
	}

	tr, err := runALS(o, sweep)
	if err != nil {
		return nil, decompErrorf(opTucker, err)
	}

	res := &Result{
		Factors:    factors,
		Core:       core,
		Error:      tr.err,
		Iterations: tr.iters,
		Status:     tr.status,
		History:    tr.history,
	}
	if o.NormalizeSigns {
		res.NormalizeSigns()
	}

	return res, nil
}

// TuckerUniform is Tucker with rank r on every mode.
func TuckerUniform(t *tensor.Dense, r int, opts ...Option) (*Result, error) {
	n, err := CheckTensorUniform(t, r)
	if err != nil {
		return nil, decompErrorf(opTuckerUniform, err)
	}
	res, err := Tucker(t, ExpandRank(r, n), opts...)
	if err != nil {
		return nil, decompErrorf(opTuckerUniform, err)
	}

	return res, nil
}

// projection lists the contractions T ×_m A_mᵀ for every mode except skip
// (skip < 0 keeps all of them).
func projection(factors []*matrix.Dense, skip int) []tensor.ModeMatrix {
	ops := make([]tensor.ModeMatrix, 0, len(factors))
	for m, a := range factors {
		if m == skip {
			continue
		}
		ops = append(ops, tensor.ModeMatrix{Matrix: a, Mode: m, How: tensor.ContractMatrixRows})
	}

	return ops
}
