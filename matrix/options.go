// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the spectral kernels and the
// numeric policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon is the relative Jacobi tolerance used by PinvSym:
	// sweeps stop once max|A[p,q]| < eps·‖A‖_F.
	DefaultEpsilon = 1e-12

	// DefaultRcond is the relative cutoff of the pseudo-inverses: eigenvalues
	// (PinvSym) or singular values (Pinv) below rcond·max are treated as zero.
	DefaultRcond = 1e-12

	// DefaultMaxRotations is the rotation budget per dimension squared of
	// the Jacobi routine used by PinvSym (budget = DefaultMaxRotations·n² + DefaultMaxRotations).
	DefaultMaxRotations = 100

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, positive"
	panicRcondInvalid     = "matrix: WithRcond: rcond must be finite, non-negative"
	panicRotationsInvalid = "matrix: WithMaxRotations: budget must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; public entry points
// accept `...Option` and internally resolve them via gatherOptions.
type Options struct {
	eps          float64 // > 0; DefaultEpsilon
	rcond        float64 // >= 0; DefaultRcond
	maxRotations int     // > 0; DefaultMaxRotations
}

// WithEpsilon sets the relative Jacobi tolerance eps used by PinvSym.
// Implementation:
//   - Stage 1: validate eps is finite and > 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Values much below 1e-14 may not be reachable in float64 and end in ErrMatrixEigenFailed.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithRcond sets the relative cutoff below which spectral values are dropped.
// Panics when rcond is negative or non-finite.
func WithRcond(rcond float64) Option {
	if isNonFinite(rcond) || rcond < 0 {
		panic(panicRcondInvalid)
	}

	return func(o *Options) { o.rcond = rcond }
}

// WithMaxRotations sets the Jacobi rotation budget factor (see DefaultMaxRotations).
// Panics when n ≤ 0.
func WithMaxRotations(n int) Option {
	if n <= 0 {
		panic(panicRotationsInvalid)
	}

	return func(o *Options) { o.maxRotations = n }
}

// gatherOptions resolves defaults and applies setters in order (last wins).
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := Options{
		eps:          DefaultEpsilon,
		rcond:        DefaultRcond,
		maxRotations: DefaultMaxRotations,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// isNonFinite reports whether x is NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
