// SPDX-License-Identifier: MIT
package decomp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtensor/decomp"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	o := decomp.DefaultOptions()
	assert.Equal(t, decomp.DefaultMaxIter, o.MaxIter)
	assert.Equal(t, decomp.DefaultTol, o.Tol)
	assert.Equal(t, decomp.DefaultAbsTol, o.AbsTol)
	assert.Equal(t, decomp.DefaultRcond, o.Rcond)
	assert.Equal(t, int64(decomp.DefaultSeed), o.Seed)
	assert.Equal(t, decomp.NormalEquations, o.Solver)
	assert.Nil(t, o.Init)
	assert.True(t, o.NormalizeSigns)
	assert.False(t, o.NormalizeFactors)
	assert.Nil(t, o.Reporter)
}

func TestOptions_Apply(t *testing.T) {
	t.Parallel()

	o := decomp.DefaultOptions()
	for _, opt := range []decomp.Option{
		decomp.WithMaxIter(7),
		decomp.WithTol(0),
		decomp.WithAbsTol(1e-3),
		decomp.WithRcond(1e-6),
		decomp.WithSeed(-5),
		decomp.WithSolver(decomp.LeastSquares),
		decomp.WithInitializer(decomp.SVDInit),
		decomp.WithSignNormalization(false),
		decomp.WithFactorNormalization(true),
		decomp.WithReporter(func(decomp.Event) {}),
	} {
		opt(&o)
	}
	assert.Equal(t, 7, o.MaxIter)
	assert.Equal(t, 0.0, o.Tol)
	assert.Equal(t, 1e-3, o.AbsTol)
	assert.Equal(t, 1e-6, o.Rcond)
	assert.Equal(t, int64(-5), o.Seed)
	assert.Equal(t, decomp.LeastSquares, o.Solver)
	assert.NotNil(t, o.Init)
	assert.False(t, o.NormalizeSigns)
	assert.True(t, o.NormalizeFactors)
	assert.NotNil(t, o.Reporter)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()

	o := decomp.DefaultOptions()
	for name, opt := range map[string]decomp.Option{
		"max iter":  decomp.WithMaxIter(0),
		"tol":       decomp.WithTol(-1),
		"tol nan":   decomp.WithTol(math.NaN()),
		"abs tol":   decomp.WithAbsTol(-1e-9),
		"rcond":     decomp.WithRcond(-1),
		"rcond inf": decomp.WithRcond(math.Inf(1)),
		"solver":    decomp.WithSolver(decomp.Solver(7)),
		"nil init":  decomp.WithInitializer(nil),
	} {
		opt := opt
		require.Panics(t, func() { opt(&o) }, name)
	}
}

func TestStringers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "converged", decomp.Converged.String())
	assert.Equal(t, "max-iter-exceeded", decomp.MaxIterExceeded.String())
	assert.Equal(t, "Status(9)", decomp.Status(9).String())
	assert.Equal(t, "normal-equations", decomp.NormalEquations.String())
	assert.Equal(t, "least-squares", decomp.LeastSquares.String())
	assert.Equal(t, "Solver(4)", decomp.Solver(4).String())
	assert.Equal(t, "hello", decomp.Event{Message: "hello"}.String())
}

func TestDeriveSeed(t *testing.T) {
	t.Parallel()

	a := decomp.DeriveSeed(42, 0)
	require.Equal(t, a, decomp.DeriveSeed(42, 0))
	require.NotEqual(t, a, decomp.DeriveSeed(42, 1))
	require.NotEqual(t, a, decomp.DeriveSeed(43, 0))
}
