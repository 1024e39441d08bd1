// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

const (
	opRandomInit = "RandomInit"
	opSVDInit    = "SVDInit"
	opInit       = "initialize"
)

// Initializer builds the starting factors: one d_n×ranks[n] matrix per mode.
// rng is owned by the solve and seeded from Options.Seed.
type Initializer func(t *tensor.Dense, ranks []int, rng *rand.Rand) ([]*matrix.Dense, error)

// RandomInit draws every factor entry from N(0, 1).
// Factors are filled in mode order, row-major, so a seed fixes the result.
func RandomInit(t *tensor.Dense, ranks []int, rng *rand.Rand) ([]*matrix.Dense, error) {
	if t == nil {
		return nil, decompErrorf(opRandomInit, ErrNilTensor)
	}
	if len(ranks) != t.NDims() {
		return nil, decompErrorf(opRandomInit, ErrRankLength)
	}
	if rng == nil {
		rng = rngFromSeed(0)
	}
	factors := make([]*matrix.Dense, len(ranks))
	for n, r := range ranks {
		a, err := matrix.NewDense(t.Dim(n), r)
		if err != nil {
			return nil, decompErrorf(opRandomInit, fmt.Errorf("mode %d: %w", n, err))
		}
		data := a.RawData()
		for i := range data {
			data[i] = rng.NormFloat64()
		}
		factors[n] = a
	}

	return factors, nil
}

// SVDInit takes the leading ranks[n] left singular vectors of each mode
// unfolding (HOSVD). Columns beyond the numerical rank of the unfolding come
// from the full SVD and complete an orthonormal basis. rng is unused: the
// result depends on t alone.
func SVDInit(t *tensor.Dense, ranks []int, _ *rand.Rand) ([]*matrix.Dense, error) {
	if t == nil {
		return nil, decompErrorf(opSVDInit, ErrNilTensor)
	}
	if len(ranks) != t.NDims() {
		return nil, decompErrorf(opSVDInit, ErrRankLength)
	}
	factors := make([]*matrix.Dense, len(ranks))
	for n, r := range ranks {
		u, err := tensor.RowUnfold(t, n)
		if err != nil {
			return nil, decompErrorf(opSVDInit, err)
		}
		if factors[n], _, err = matrix.LeftSingularVectors(u, r); err != nil {
			return nil, decompErrorf(opSVDInit, fmt.Errorf("mode %d: %w", n, err))
		}
	}

	return factors, nil
}

// initialize runs fn and checks its output against the expected shapes.
func initialize(fn Initializer, t *tensor.Dense, ranks []int, seed int64) ([]*matrix.Dense, error) {
	factors, err := fn(t, ranks, rngFromSeed(seed))
	if err != nil {
		return nil, decompErrorf(opInit, err)
	}
	if len(factors) != len(ranks) {
		return nil, decompErrorf(opInit, fmt.Errorf("%d factors for %d modes: %w", len(factors), len(ranks), ErrBadInitializer))
	}
	for n, a := range factors {
		if a == nil {
			return nil, decompErrorf(opInit, fmt.Errorf("mode %d: nil factor: %w", n, ErrBadInitializer))
		}
		if r, c := a.Shape(); r != t.Dim(n) || c != ranks[n] {
			return nil, decompErrorf(opInit,
				fmt.Errorf("mode %d: %dx%d, want %dx%d: %w", n, r, c, t.Dim(n), ranks[n], ErrBadInitializer))
		}
		// the solve overwrites factors; never touch matrices the caller may keep
		factors[n] = a.Clone().(*matrix.Dense)
	}

	return factors, nil
}
