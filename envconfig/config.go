// SPDX-License-Identifier: MIT

// Package envconfig reads lvtensor defaults from the environment.
// Every getter reads the environment on each call; malformed values fall back
// to the default with a slog warning.
package envconfig

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvtensor/decomp"
)

// Environment variable names.
const (
	KeyDebug   = "LVTENSOR_DEBUG"
	KeyMaxIter = "LVTENSOR_MAX_ITER"
	KeyTol     = "LVTENSOR_TOL"
	KeySeed    = "LVTENSOR_SEED"
	KeyWorkers = "LVTENSOR_WORKERS"
)

// Var returns the trimmed value of key, without surrounding quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel maps LVTENSOR_DEBUG to a slog level:
// unset/false = INFO, true/1 = DEBUG, n > 1 = slog.Level(-4n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var(KeyDebug); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Int returns a getter for a positive integer with a default.
func Int(key string, defaultValue int) func() int {
	return func() int {
		if s := Var(key); s != "" {
			if n, err := strconv.Atoi(s); err != nil || n < 1 {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}

		return defaultValue
	}
}

// Int64 returns a getter for any int64 with a default.
func Int64(key string, defaultValue int64) func() int64 {
	return func() int64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}

		return defaultValue
	}
}

// Float returns a getter for a finite non-negative float with a default.
func Float(key string, defaultValue float64) func() float64 {
	return func() float64 {
		if s := Var(key); s != "" {
			if f, err := strconv.ParseFloat(s, 64); err != nil || !(f >= 0) || math.IsInf(f, 0) {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return f
			}
		}

		return defaultValue
	}
}

var (
	// MaxIter is the default sweep cap.
	MaxIter = Int(KeyMaxIter, decomp.DefaultMaxIter)
	// Tol is the default error-change tolerance.
	Tol = Float(KeyTol, decomp.DefaultTol)
	// Seed is the default base seed.
	Seed = Int64(KeySeed, decomp.DefaultSeed)
	// Workers caps concurrent restarts; defaults to GOMAXPROCS.
	Workers = Int(KeyWorkers, runtime.GOMAXPROCS(0))
)

// EnvVar describes one variable and its effective value.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		KeyDebug:   {KeyDebug, LogLevel(), "Show additional debug information (e.g. LVTENSOR_DEBUG=1)"},
		KeyMaxIter: {KeyMaxIter, MaxIter(), "Maximum ALS sweeps per solve (default 100)"},
		KeyTol:     {KeyTol, Tol(), "Stop when the relative error changes by less than this (default 1e-8)"},
		KeySeed:    {KeySeed, Seed(), "Base seed for initializers and restarts (default 1)"},
		KeyWorkers: {KeyWorkers, Workers(), "Maximum number of restarts solved concurrently"},
	}
}

// Values returns every variable's current value rendered as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}

	return vals
}
