// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"

	"github.com/katalvlaran/lvtensor/tensor"
)

const (
	opCheckTensor        = "CheckTensor"
	opCheckTensorUniform = "CheckTensorUniform"
)

// minOrder is the smallest tensor order the solvers accept.
const minOrder = 3

// CheckTensor gates every solver entry point. It returns the tensor order N
// when t has at least three modes and coreDims holds one rank per mode with
// 1 ≤ coreDims[n] ≤ d_n. Nothing numeric happens before it succeeds.
//
// Errors: ErrNilTensor, ErrTensorOrder, ErrRankLength, ErrRankOutOfRange.
func CheckTensor(t *tensor.Dense, coreDims []int) (int, error) {
	if t == nil {
		return 0, decompErrorf(opCheckTensor, ErrNilTensor)
	}
	n := t.NDims()
	if n < minOrder {
		return 0, decompErrorf(opCheckTensor, fmt.Errorf("order %d: %w", n, ErrTensorOrder))
	}
	if len(coreDims) != n {
		return 0, decompErrorf(opCheckTensor, fmt.Errorf("%d ranks for %d modes: %w", len(coreDims), n, ErrRankLength))
	}
	for k, r := range coreDims {
		if r < 1 || r > t.Dim(k) {
			return 0, decompErrorf(opCheckTensor,
				fmt.Errorf("mode %d: rank %d not in [1, %d]: %w", k, r, t.Dim(k), ErrRankOutOfRange))
		}
	}

	return n, nil
}

// CheckTensorUniform is CheckTensor with the same rank r on every mode.
func CheckTensorUniform(t *tensor.Dense, r int) (int, error) {
	if t == nil {
		return 0, decompErrorf(opCheckTensorUniform, ErrNilTensor)
	}
	n, err := CheckTensor(t, ExpandRank(r, t.NDims()))
	if err != nil {
		return 0, decompErrorf(opCheckTensorUniform, err)
	}

	return n, nil
}

// ExpandRank returns n copies of r.
func ExpandRank(r, n int) []int {
	if n < 0 {
		n = 0
	}
	ranks := make([]int, n)
	for i := range ranks {
		ranks[i] = r
	}

	return ranks
}
