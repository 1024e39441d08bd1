// SPDX-License-Identifier: MIT

// Package synth builds synthetic low-rank tensors with known factors.
// Everything is driven by an explicit seed (0 maps to 1), so a seed pins the
// tensor bit for bit.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

// ErrBadRank indicates a non-positive rank or a rank list of the wrong length.
var ErrBadRank = errors.New("synth: invalid rank")

// ErrBadNoise indicates a negative or non-finite noise level.
var ErrBadNoise = errors.New("synth: invalid noise level")

const (
	opCP     = "CP"
	opTucker = "Tucker"
	opNoise  = "AddNoise"
	zeroSeed = 1
)

func synthErrorf(op string, err error) error {
	return fmt.Errorf("synth.%s: %w", op, err)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = zeroSeed
	}

	return rand.New(rand.NewSource(seed))
}

// gaussian returns an r×c matrix of N(0, 1) draws, row-major.
func gaussian(rng *rand.Rand, r, c int) (*matrix.Dense, error) {
	m, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, err
	}
	data := m.RawData()
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	return m, nil
}

// CP returns Σ_{r<rank} a_0^r ∘ a_1^r ∘ … ∘ a_{N-1}^r built on a zero tensor,
// with Gaussian factor columns, plus the factors (d_n×rank each).
//
// Errors: ErrBadRank, tensor.ErrBadShape.
func CP(shape []int, rank int, seed int64) (*tensor.Dense, []*matrix.Dense, error) {
	if rank < 1 {
		return nil, nil, synthErrorf(opCP, ErrBadRank)
	}
	t, err := tensor.New(shape...)
	if err != nil {
		return nil, nil, synthErrorf(opCP, err)
	}
	rng := newRand(seed)
	factors := make([]*matrix.Dense, len(shape))
	for n, d := range shape {
		if factors[n], err = gaussian(rng, d, rank); err != nil {
			return nil, nil, synthErrorf(opCP, err)
		}
	}

	vecs := make([][]float64, len(shape))
	for r := 0; r < rank; r++ {
		for n, a := range factors {
			if vecs[n], err = a.Col(r); err != nil {
				return nil, nil, synthErrorf(opCP, err)
			}
		}
		if err = t.AddOuter(1, vecs...); err != nil {
			return nil, nil, synthErrorf(opCP, err)
		}
	}

	return t, factors, nil
}

// Tucker returns G ×_0 A_0 … ×_{N-1} A_{N-1} for a Gaussian core G of shape
// ranks and Gaussian factors A_n (d_n×ranks[n]), plus the core and factors.
//
// Errors: ErrBadRank (length mismatch or a rank < 1), tensor.ErrBadShape.
func Tucker(shape, ranks []int, seed int64) (*tensor.Dense, *tensor.Dense, []*matrix.Dense, error) {
	if len(ranks) != len(shape) {
		return nil, nil, nil, synthErrorf(opTucker, fmt.Errorf("%d ranks for %d modes: %w", len(ranks), len(shape), ErrBadRank))
	}
	if err := tensor.Shape(shape).Validate(); err != nil {
		return nil, nil, nil, synthErrorf(opTucker, err)
	}
	for n, r := range ranks {
		if r < 1 {
			return nil, nil, nil, synthErrorf(opTucker, fmt.Errorf("mode %d: %w", n, ErrBadRank))
		}
	}

	rng := newRand(seed)
	core, err := tensor.New(ranks...)
	if err != nil {
		return nil, nil, nil, synthErrorf(opTucker, err)
	}
	for i, data := 0, core.RawData(); i < len(data); i++ {
		data[i] = rng.NormFloat64()
	}
	factors := make([]*matrix.Dense, len(shape))
	ops := make([]tensor.ModeMatrix, len(shape))
	for n, d := range shape {
		if factors[n], err = gaussian(rng, d, ranks[n]); err != nil {
			return nil, nil, nil, synthErrorf(opTucker, err)
		}
		ops[n] = tensor.ModeMatrix{Matrix: factors[n], Mode: n, How: tensor.ContractMatrixCols}
	}
	t, err := tensor.MultiModeProduct(core, ops)
	if err != nil {
		return nil, nil, nil, synthErrorf(opTucker, err)
	}

	return t, core, factors, nil
}

// AddNoise adds i.i.d. Gaussian noise in place, scaled so that the noise has
// Frobenius norm ≈ level·‖t‖. level 0 is a no-op.
//
// Errors: tensor.ErrNilTensor, ErrBadNoise.
func AddNoise(t *tensor.Dense, level float64, seed int64) error {
	if t == nil {
		return synthErrorf(opNoise, tensor.ErrNilTensor)
	}
	if !(level >= 0) || math.IsInf(level, 0) {
		return synthErrorf(opNoise, fmt.Errorf("%v: %w", level, ErrBadNoise))
	}
	if level == 0 {
		return nil
	}
	sigma := level * t.Norm() / math.Sqrt(float64(t.Len()))
	rng := newRand(seed)
	data := t.RawData()
	for i := range data {
		data[i] += sigma * rng.NormFloat64()
	}

	return nil
}
