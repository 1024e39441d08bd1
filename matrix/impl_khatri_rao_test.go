// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtensor/matrix"
)

func TestKhatriRao_RowOrdering(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	b := NewFilledDense(t, 3, 2, []float64{5, 6, 7, 8, 9, 10})

	got, err := matrix.KhatriRao(a, b)
	require.NoError(t, err)
	r, c := got.Shape()
	require.Equal(t, 6, r)
	require.Equal(t, 2, c)
	require.Equal(t, []float64{
		5, 12,
		7, 16,
		9, 20,
		15, 24,
		21, 32,
		27, 40,
	}, got.RawData())

	// interface operands give the same result
	got2, err := matrix.KhatriRao(hide{a}, hide{b})
	require.NoError(t, err)
	require.Equal(t, got.RawData(), got2.RawData())
}

func TestKhatriRao_Errors(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 2)
	_, err := matrix.KhatriRao(a, MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.KhatriRao(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.KhatriRaoAll()
	require.ErrorIs(t, err, matrix.ErrEmptyOperands)

	_, err = matrix.KhatriRaoAll(a, a, MustDense(t, 4, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestKhatriRaoAll_LeftFold(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 2, 3, 1)
	b := RandFilledDense(t, 4, 3, 2)
	c := RandFilledDense(t, 3, 3, 3)

	ab, err := matrix.KhatriRao(a, b)
	require.NoError(t, err)
	want, err := matrix.KhatriRao(ab, c)
	require.NoError(t, err)

	got, err := matrix.KhatriRaoAll(a, b, c)
	require.NoError(t, err)
	require.Equal(t, want.RawData(), got.RawData())

	single, err := matrix.KhatriRaoAll(a)
	require.NoError(t, err)
	require.Equal(t, a.RawData(), single.RawData())
	single.RawData()[0] = 42
	require.NotEqual(t, 42.0, a.RawData()[0], "single operand must be copied")
}

// The Gram matrix of a Khatri-Rao product is the Hadamard product of the
// operand Gram matrices; CP-ALS relies on this identity.
func TestKhatriRao_GramIdentity(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 5, 3, 11)
	b := RandFilledDense(t, 4, 3, 12)

	kr, err := matrix.KhatriRao(a, b)
	require.NoError(t, err)
	lhs, err := matrix.Gram(kr)
	require.NoError(t, err)

	ga, err := matrix.Gram(a)
	require.NoError(t, err)
	gb, err := matrix.Gram(b)
	require.NoError(t, err)
	rhs, err := matrix.Hadamard(ga, gb)
	require.NoError(t, err)

	RequireClose(t, rhs, lhs)
}
