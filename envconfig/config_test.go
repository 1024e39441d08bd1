// SPDX-License-Identifier: MIT
package envconfig_test

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvtensor/decomp"
	"github.com/katalvlaran/lvtensor/envconfig"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"true":  slog.LevelDebug,
		"1":     slog.LevelDebug,
		"2":     slog.Level(-8),
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			t.Setenv(envconfig.KeyDebug, in)
			assert.Equal(t, want, envconfig.LogLevel())
		})
	}
}

func TestVarTrimsQuotes(t *testing.T) {
	t.Setenv(envconfig.KeySeed, ` "42" `)
	assert.Equal(t, "42", envconfig.Var(envconfig.KeySeed))
	assert.Equal(t, int64(42), envconfig.Seed())
}

func TestNumericGetters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(envconfig.KeyMaxIter, "")
		t.Setenv(envconfig.KeyTol, "")
		t.Setenv(envconfig.KeySeed, "")
		t.Setenv(envconfig.KeyWorkers, "")
		assert.Equal(t, decomp.DefaultMaxIter, envconfig.MaxIter())
		assert.Equal(t, decomp.DefaultTol, envconfig.Tol())
		assert.Equal(t, int64(decomp.DefaultSeed), envconfig.Seed())
		assert.Equal(t, runtime.GOMAXPROCS(0), envconfig.Workers())
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv(envconfig.KeyMaxIter, "250")
		t.Setenv(envconfig.KeyTol, "1e-10")
		t.Setenv(envconfig.KeySeed, "-3")
		t.Setenv(envconfig.KeyWorkers, "2")
		assert.Equal(t, 250, envconfig.MaxIter())
		assert.Equal(t, 1e-10, envconfig.Tol())
		assert.Equal(t, int64(-3), envconfig.Seed())
		assert.Equal(t, 2, envconfig.Workers())
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv(envconfig.KeyMaxIter, "0")
		t.Setenv(envconfig.KeyTol, "-1")
		t.Setenv(envconfig.KeySeed, "x")
		t.Setenv(envconfig.KeyWorkers, "many")
		assert.Equal(t, decomp.DefaultMaxIter, envconfig.MaxIter())
		assert.Equal(t, decomp.DefaultTol, envconfig.Tol())
		assert.Equal(t, int64(decomp.DefaultSeed), envconfig.Seed())
		assert.Equal(t, runtime.GOMAXPROCS(0), envconfig.Workers())
	})
}

func TestAsMapAndValues(t *testing.T) {
	t.Setenv(envconfig.KeyMaxIter, "7")
	t.Setenv(envconfig.KeyDebug, "")

	m := envconfig.AsMap()
	assert.Len(t, m, 5)
	assert.Equal(t, 7, m[envconfig.KeyMaxIter].Value)
	assert.NotEmpty(t, m[envconfig.KeyTol].Description)

	v := envconfig.Values()
	assert.Equal(t, "7", v[envconfig.KeyMaxIter])
	assert.Equal(t, "INFO", v[envconfig.KeyDebug])
}
