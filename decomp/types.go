// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvtensor/matrix"
	"github.com/katalvlaran/lvtensor/tensor"
)

// Defaults applied by DefaultOptions.
const (
	DefaultMaxIter = 100   // sweep cap
	DefaultTol     = 1e-8  // |Δ relative error| between sweeps
	DefaultAbsTol  = 1e-12 // relative error considered exact
	DefaultRcond   = 1e-12 // spectral cutoff of the pseudo-inverses
	DefaultSeed    = 1     // initializer seed
)

// Solver selects how a CP factor update solves its least-squares problem.
type Solver int

const (
	// NormalEquations computes F = U·KR·pinv(G), G the Hadamard product of
	// the other factors' Gram matrices. Cheap: only R×R systems.
	NormalEquations Solver = iota

	// LeastSquares computes F = U·pinv(KRᵀ) through an SVD of the full
	// Khatri-Rao product. Slower, better conditioned.
	LeastSquares
)

// String implements fmt.Stringer.
func (s Solver) String() string {
	switch s {
	case NormalEquations:
		return "normal-equations"
	case LeastSquares:
		return "least-squares"
	default:
		return fmt.Sprintf("Solver(%d)", int(s))
	}
}

// Status is the terminal state of a solve. Neither value is an error.
type Status int

const (
	// Converged means the error change or the error itself fell below tolerance.
	Converged Status = iota

	// MaxIterExceeded means the sweep cap was reached first.
	MaxIterExceeded
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxIterExceeded:
		return "max-iter-exceeded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// EventKind classifies a solver event.
type EventKind int

const (
	EventSweep     EventKind = iota // one sweep finished
	EventConverged                  // terminal: Converged
	EventMaxIter                    // terminal: MaxIterExceeded
)

// Event is an informational notification from a running solve.
type Event struct {
	Kind      EventKind
	Iteration int     // sweeps completed so far
	Error     float64 // relative reconstruction error after that sweep
	Message   string
}

// String returns the event message.
func (e Event) String() string { return e.Message }

// Reporter receives solver events synchronously, on the solving goroutine.
type Reporter func(Event)

// Result is the output of a decomposition. It is built once when the solve
// ends and the solver keeps no reference to it.
//
// Invariant: len(Factors) == N and Factors[n] is d_n×rank_n.
type Result struct {
	Factors    []*matrix.Dense
	Core       *tensor.Dense // Tucker core; nil for CP
	Weights    []float64     // CP component weights; nil for Tucker
	Error      float64       // final relative error ‖T−T̂‖/‖T‖
	Iterations int
	Status     Status
	History    []float64 // relative error after every sweep
}

// Options configures CP and Tucker.
//
// MaxIter         – sweep cap. Must be ≥ 1.
// Tol             – stop when |err_prev − err| < Tol. Must be ≥ 0.
// AbsTol          – stop when err < AbsTol. Must be ≥ 0.
// Rcond           – relative spectral cutoff of the pseudo-inverses. Must be ≥ 0.
// Seed            – initializer seed; 0 maps to a fixed default.
// Solver          – CP least-squares strategy.
// Init            – factor initializer; nil selects RandomInit for CP and SVDInit for Tucker.
// NormalizeSigns  – flip factor columns so their largest-magnitude entry is positive.
// NormalizeFactors – CP only: scale factor columns to unit norm, norms go to Weights.
// Reporter        – optional event sink.
type Options struct {
	MaxIter          int
	Tol              float64
	AbsTol           float64
	Rcond            float64
	Seed             int64
	Solver           Solver
	Init             Initializer
	NormalizeSigns   bool
	NormalizeFactors bool
	Reporter         Reporter
}

// Option represents a functional option for CP and Tucker.
type Option func(*Options)

// DefaultOptions returns the defaults used when no Option is passed.
//
// Defaults:
//   - MaxIter 100, Tol 1e-8, AbsTol 1e-12, Rcond 1e-12, Seed 1.
//   - NormalEquations solver, method-specific initializer.
//   - Sign normalization on, factor normalization off, no reporter.
func DefaultOptions() Options {
	return Options{
		MaxIter:        DefaultMaxIter,
		Tol:            DefaultTol,
		AbsTol:         DefaultAbsTol,
		Rcond:          DefaultRcond,
		Seed:           DefaultSeed,
		Solver:         NormalEquations,
		NormalizeSigns: true,
	}
}

// WithMaxIter sets the sweep cap. Panics if n < 1.
func WithMaxIter(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic("decomp: MaxIter must be at least 1")
		}
		o.MaxIter = n
	}
}

// WithTol sets the error-change tolerance. Panics on a negative or NaN value.
func WithTol(tol float64) Option {
	return func(o *Options) {
		if !(tol >= 0) {
			panic("decomp: Tol must be non-negative")
		}
		o.Tol = tol
	}
}

// WithAbsTol sets the absolute error tolerance. Panics on a negative or NaN value.
func WithAbsTol(tol float64) Option {
	return func(o *Options) {
		if !(tol >= 0) {
			panic("decomp: AbsTol must be non-negative")
		}
		o.AbsTol = tol
	}
}

// WithRcond sets the pseudo-inverse cutoff. Panics on a negative or non-finite value.
func WithRcond(rcond float64) Option {
	return func(o *Options) {
		if !(rcond >= 0) || math.IsInf(rcond, 0) {
			panic("decomp: Rcond must be a finite non-negative value")
		}
		o.Rcond = rcond
	}
}

// WithSeed sets the initializer seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithSolver selects the CP least-squares strategy. Panics on an unknown value.
func WithSolver(s Solver) Option {
	return func(o *Options) {
		if s != NormalEquations && s != LeastSquares {
			panic(fmt.Sprintf("decomp: unknown solver %v", s))
		}
		o.Solver = s
	}
}

// WithInitializer replaces the default initializer. Panics on nil.
func WithInitializer(fn Initializer) Option {
	return func(o *Options) {
		if fn == nil {
			panic("decomp: nil initializer")
		}
		o.Init = fn
	}
}

// WithSignNormalization toggles sign normalization of the result.
func WithSignNormalization(on bool) Option {
	return func(o *Options) {
		o.NormalizeSigns = on
	}
}

// WithFactorNormalization toggles CP column normalization into Weights.
func WithFactorNormalization(on bool) Option {
	return func(o *Options) {
		o.NormalizeFactors = on
	}
}

// WithReporter installs an event sink.
func WithReporter(r Reporter) Option {
	return func(o *Options) {
		o.Reporter = r
	}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
