// SPDX-License-Identifier: MIT

package decomp

import (
	"errors"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

const (
	opReconstruct = "Reconstruct"
	opFullCore    = "FullCore"
)

// errNoFactors guards results that were not produced by CP or Tucker.
var errNoFactors = errors.New("decomp: result has no factors")

// Reconstruct materializes the model tensor T̂.
// CP: T̂_(0) = A_0·diag(λ)·(A_1 ⊙ … ⊙ A_{N-1})ᵀ folded back on mode 0.
// Tucker: T̂ = G ×_0 A_0 ×_1 A_1 … ×_{N-1} A_{N-1}.
func (r *Result) Reconstruct() (*tensor.Dense, error) {
	if r == nil || len(r.Factors) == 0 {
		return nil, decompErrorf(opReconstruct, errNoFactors)
	}
	var (
		out *tensor.Dense
		err error
	)
	if r.Core != nil {
		out, err = tuckerReconstruct(r.Core, r.Factors)
	} else {
		out, err = cpReconstruct(r.Factors, r.Weights)
	}
	if err != nil {
		return nil, decompErrorf(opReconstruct, err)
	}

	return out, nil
}

// FullCore returns a copy of the Tucker core, or for CP the equivalent
// super-diagonal core holding the weights.
func (r *Result) FullCore() (*tensor.Dense, error) {
	if r == nil || len(r.Factors) == 0 {
		return nil, decompErrorf(opFullCore, errNoFactors)
	}
	if r.Core != nil {
		return r.Core.Clone(), nil
	}
	w := r.Weights
	if w == nil {
		w = unitWeights(r.Factors[0].Cols())
	}
	core, err := tensor.SuperDiagonal(len(r.Factors), w)
	if err != nil {
		return nil, decompErrorf(opFullCore, err)
	}

	return core, nil
}

// cpReconstruct sums the weighted rank-one terms. nil weights mean all ones.
func cpReconstruct(factors []*matrix.Dense, weights []float64) (*tensor.Dense, error) {
	shape := make([]int, len(factors))
	rest := make([]matrix.Matrix, 0, len(factors)-1)
	for n, a := range factors {
		shape[n] = a.Rows()
		if n > 0 {
			rest = append(rest, a)
		}
	}

	var (
		a0  *matrix.Dense
		err error
	)
	a0 = factors[0]
	if weights != nil {
		if a0, err = matrix.ScaleCols(a0, weights); err != nil {
			return nil, err
		}
	}
	kr, err := matrix.KhatriRaoAll(rest...)
	if err != nil {
		return nil, err
	}
	krT, err := matrix.Transpose(kr)
	if err != nil {
		return nil, err
	}
	m, err := matrix.Mul(a0, krT)
	if err != nil {
		return nil, err
	}

	return tensor.FoldRow(m, shape, 0)
}

// tuckerReconstruct expands core through every factor.
func tuckerReconstruct(core *tensor.Dense, factors []*matrix.Dense) (*tensor.Dense, error) {
	ops := make([]tensor.ModeMatrix, len(factors))
	for n, a := range factors {
		ops[n] = tensor.ModeMatrix{Matrix: a, Mode: n, How: tensor.ContractMatrixCols}
	}

	return tensor.MultiModeProduct(core, ops)
}
