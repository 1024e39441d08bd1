// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtensor/matrix"
)

// Option constructors panic on nonsensical values (programmer error).
func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { matrix.WithEpsilon(0) })
	require.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	require.Panics(t, func() { matrix.WithRcond(-1) })
	require.Panics(t, func() { matrix.WithRcond(math.NaN()) })
	require.Panics(t, func() { matrix.WithMaxRotations(0) })

	require.NotPanics(t, func() { matrix.WithRcond(0) })
}

// A large rcond drops the small eigen-direction; the default keeps it.
func TestOptions_RcondAffectsPinvSym(t *testing.T) {
	t.Parallel()

	g := NewFilledDense(t, 2, 2, []float64{1, 0, 0, 1e-6})

	def, err := matrix.PinvSym(g)
	require.NoError(t, err)
	require.InDelta(t, 1e6, def.RawData()[3], 1e-3)

	cut, err := matrix.PinvSym(g, matrix.WithRcond(1e-3))
	require.NoError(t, err)
	require.Equal(t, 0.0, cut.RawData()[3])
	require.Equal(t, 1.0, cut.RawData()[0])
}
