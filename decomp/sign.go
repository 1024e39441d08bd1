// SPDX-License-Identifier: MIT

package decomp

import (
	"math"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

// FlipColumnSigns negates, in place, every column of a whose largest-magnitude
// entry is negative, and reports which columns it flipped. Ties keep the first
// row reaching the maximum; all-zero columns are left alone.
func FlipColumnSigns(a *matrix.Dense) []bool {
	if a == nil {
		return nil
	}
	rows, cols := a.Shape()
	data := a.RawData()
	flipped := make([]bool, cols)
	var (
		i, j, at int
		best     float64
	)
	for j = 0; j < cols; j++ {
		best, at = 0, -1
		for i = 0; i < rows; i++ {
			if v := math.Abs(data[i*cols+j]); v > best {
				best, at = v, i
			}
		}
		if at < 0 || data[at*cols+j] > 0 {
			continue
		}
		for i = 0; i < rows; i++ {
			data[i*cols+j] = -data[i*cols+j]
		}
		flipped[j] = true
	}

	return flipped
}

// NormalizeSigns applies FlipColumnSigns to every factor and compensates so
// the reconstruction is unchanged: CP negates Weights[r], Tucker negates the
// core slice at index r of the flipped mode. A CP result without weights
// gets unit weights first.
func (r *Result) NormalizeSigns() {
	if r == nil || len(r.Factors) == 0 {
		return
	}
	if r.Core == nil && r.Weights == nil {
		r.Weights = unitWeights(r.Factors[0].Cols())
	}
	for n, a := range r.Factors {
		for col, f := range FlipColumnSigns(a) {
			if !f {
				continue
			}
			if r.Core != nil {
				negateSlice(r.Core, n, col)
			} else {
				r.Weights[col] = -r.Weights[col]
			}
		}
	}
}

// negateSlice negates every element of t whose mode-th index equals index.
func negateSlice(t *tensor.Dense, mode, index int) {
	shape := t.Shape()
	stride := shape.Strides()[mode]
	dim := shape[mode]
	data := t.RawData()
	for off := range data {
		if (off/stride)%dim == index {
			data[off] = -data[off]
		}
	}
}
