// SPDX-License-Identifier: MIT
package decomp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

// randTensor returns a tensor with deterministic U(-1,1) entries.
func randTensor(t testing.TB, seed int64, shape ...int) *tensor.Dense {
	t.Helper()
	x, err := tensor.New(shape...)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := range x.RawData() {
		x.RawData()[i] = rng.Float64()*2 - 1
	}

	return x
}

// requireTensorsClose compares shapes exactly and elements within tol.
func requireTensorsClose(t *testing.T, want, got *tensor.Dense, tol float64) {
	t.Helper()
	require.Equal(t, want.Shape(), got.Shape())
	if diff := cmp.Diff(want.RawData(), got.RawData(), cmpopts.EquateApprox(tol, tol)); diff != "" {
		t.Fatalf("tensors differ (-want +got):\n%s", diff)
	}
}

// requireFactorShapes checks Factors[n] is dims[n]×ranks[n].
func requireFactorShapes(t *testing.T, factors []*matrix.Dense, dims, ranks []int) {
	t.Helper()
	require.Len(t, factors, len(dims))
	for n, a := range factors {
		r, c := a.Shape()
		require.Equal(t, dims[n], r, "mode %d rows", n)
		require.Equal(t, ranks[n], c, "mode %d cols", n)
	}
}

// requireOrthonormal checks AᵀA ≈ I.
func requireOrthonormal(t *testing.T, a *matrix.Dense) {
	t.Helper()
	g, err := matrix.Gram(a)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(a.Cols())
	require.NoError(t, err)
	ok, err := matrix.AllClose(g, id, 1e-9, 1e-9)
	require.NoError(t, err)
	require.True(t, ok, "columns are not orthonormal:\n%v", g)
}

// requireSignNormalized checks that the largest-magnitude entry of every
// column (first on ties) is positive.
func requireSignNormalized(t *testing.T, a *matrix.Dense) {
	t.Helper()
	rows, cols := a.Shape()
	data := a.RawData()
	for j := 0; j < cols; j++ {
		best, at := 0.0, -1
		for i := 0; i < rows; i++ {
			if v := math.Abs(data[i*cols+j]); v > best {
				best, at = v, i
			}
		}
		if at >= 0 {
			require.Greater(t, data[at*cols+j], 0.0, "column %d", j)
		}
	}
}
