// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvtensor/decomp"
	"github.com/katalvlaran/lvtensor/envconfig"
	"github.com/katalvlaran/lvtensor/synth"
	"github.com/katalvlaran/lvtensor/tensor"
)

// noiseStream keeps the noise draws independent of every restart seed.
const noiseStream = 1 << 32

const (
	methodCP     = "cp"
	methodTucker = "tucker"

	initRandom = "random"
	initSVD    = "svd"

	formatTable = "table"
	formatJSON  = "json"
)

var (
	errBadFlag = errors.New("invalid flag value")
)

// solveFlags are shared by the cp and tucker commands.
type solveFlags struct {
	shape    []int
	seed     int64
	noise    float64
	maxIter  int
	tol      float64
	restarts int
	workers  int
	init     string
	format   string
}

func addSolveFlags(cmd *cobra.Command, f *solveFlags, defaultInit string) {
	cmd.Flags().IntSliceVar(&f.shape, "shape", []int{10, 20, 30}, "Tensor shape, comma separated (at least 3 modes)")
	cmd.Flags().Int64Var(&f.seed, "seed", envconfig.Seed(), "Base seed for the synthetic tensor and the restarts")
	cmd.Flags().Float64Var(&f.noise, "noise", 0, "Relative Gaussian noise level added to the tensor")
	cmd.Flags().IntVar(&f.maxIter, "max-iter", envconfig.MaxIter(), "Maximum ALS sweeps per restart")
	cmd.Flags().Float64Var(&f.tol, "tol", envconfig.Tol(), "Convergence tolerance on the error change")
	cmd.Flags().IntVar(&f.restarts, "restarts", 1, "Number of independently seeded restarts; the best error wins")
	cmd.Flags().IntVar(&f.workers, "workers", envconfig.Workers(), "Maximum restarts solved concurrently")
	cmd.Flags().StringVar(&f.init, "init", defaultInit, "Initializer: random or svd")
	cmd.Flags().StringVar(&f.format, "format", formatTable, "Output format: table or json")
}

func (f *solveFlags) validate() error {
	switch {
	case f.maxIter < 1:
		return fmt.Errorf("--max-iter %d: %w", f.maxIter, errBadFlag)
	case !(f.tol >= 0):
		return fmt.Errorf("--tol %v: %w", f.tol, errBadFlag)
	case f.restarts < 1:
		return fmt.Errorf("--restarts %d: %w", f.restarts, errBadFlag)
	case f.workers < 1:
		return fmt.Errorf("--workers %d: %w", f.workers, errBadFlag)
	case f.format != formatTable && f.format != formatJSON:
		return fmt.Errorf("--format %q: %w", f.format, errBadFlag)
	}
	_, err := f.initializer()

	return err
}

func (f *solveFlags) initializer() (decomp.Initializer, error) {
	switch f.init {
	case initRandom:
		return decomp.RandomInit, nil
	case initSVD:
		return decomp.SVDInit, nil
	default:
		return nil, fmt.Errorf("--init %q: %w", f.init, errBadFlag)
	}
}

func parseSolver(s string) (decomp.Solver, error) {
	for _, v := range []decomp.Solver{decomp.NormalEquations, decomp.LeastSquares} {
		if s == v.String() {
			return v, nil
		}
	}

	return 0, fmt.Errorf("--solver %q: %w", s, errBadFlag)
}

func newCPCmd() *cobra.Command {
	var (
		f         solveFlags
		rank      int
		solver    string
		normalize bool
	)
	cmd := &cobra.Command{
		Use:   "cp",
		Short: "Decompose a synthetic rank-R tensor with CP-ALS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			s, err := parseSolver(solver)
			if err != nil {
				return err
			}
			x, _, err := synth.CP(f.shape, rank, f.seed)
			if err != nil {
				return err
			}
			solve := func(t *tensor.Dense, opts []decomp.Option) (*decomp.Result, error) {
				return decomp.CP(t, rank, opts...)
			}
			extra := []decomp.Option{decomp.WithSolver(s), decomp.WithFactorNormalization(normalize)}

			return runDecomposition(cmd, methodCP, x, decomp.ExpandRank(rank, len(f.shape)), &f, solve, extra)
		},
	}
	addSolveFlags(cmd, &f, initRandom)
	cmd.Flags().IntVar(&rank, "rank", 2, "CP rank (number of rank-one terms)")
	cmd.Flags().StringVar(&solver, "solver", decomp.NormalEquations.String(), "Least-squares solver: normal-equations or least-squares")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Scale factor columns to unit norm, keeping the norms as weights")

	return cmd
}

func newTuckerCmd() *cobra.Command {
	var (
		f     solveFlags
		ranks []int
	)
	cmd := &cobra.Command{
		Use:   "tucker",
		Short: "Decompose a synthetic low multilinear rank tensor with HOOI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			x, _, _, err := synth.Tucker(f.shape, ranks, f.seed)
			if err != nil {
				return err
			}
			solve := func(t *tensor.Dense, opts []decomp.Option) (*decomp.Result, error) {
				return decomp.Tucker(t, ranks, opts...)
			}

			return runDecomposition(cmd, methodTucker, x, ranks, &f, solve, nil)
		},
	}
	addSolveFlags(cmd, &f, initSVD)
	cmd.Flags().IntSliceVar(&ranks, "ranks", []int{2, 2, 2}, "Per-mode ranks, comma separated")

	return cmd
}

type solveFunc func(t *tensor.Dense, opts []decomp.Option) (*decomp.Result, error)

// runDecomposition adds noise, runs the restarts and prints the report.
func runDecomposition(cmd *cobra.Command, method string, x *tensor.Dense, ranks []int, f *solveFlags, solve solveFunc, extra []decomp.Option) error {
	logger := newLogger(cmd)
	if err := synth.AddNoise(x, f.noise, decomp.DeriveSeed(f.seed, noiseStream)); err != nil {
		return err
	}
	initFn, err := f.initializer()
	if err != nil {
		return err
	}
	logger.Info("decomposing", "method", method, "shape", x.Shape(), "ranks", ranks,
		"restarts", f.restarts, "workers", f.workers, "noise", f.noise)

	base := append([]decomp.Option{
		decomp.WithMaxIter(f.maxIter),
		decomp.WithTol(f.tol),
		decomp.WithInitializer(initFn),
	}, extra...)
	runs, err := runRestarts(cmd.Context(), logger, x, f, base, solve)
	if err != nil {
		return err
	}

	rep := newReport(method, x.Shape(), ranks, runs)
	logger.Info("best restart", "restart", rep.Best, "error", rep.Error, "status", rep.Status)

	return writeReport(cmd.OutOrStdout(), f.format, rep)
}

// restart is one seeded solve.
type restart struct {
	index  int
	seed   int64
	result *decomp.Result
}

// runRestarts solves f.restarts independently seeded problems, at most
// f.workers at a time. x is shared read-only.
func runRestarts(ctx context.Context, logger *slog.Logger, x *tensor.Dense, f *solveFlags, base []decomp.Option, solve solveFunc) ([]restart, error) {
	runs := make([]restart, f.restarts)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i := range runs {
		i := i
		runs[i] = restart{index: i, seed: decomp.DeriveSeed(f.seed, uint64(i))}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opts := append(append([]decomp.Option(nil), base...),
				decomp.WithSeed(runs[i].seed),
				decomp.WithReporter(logReporter(logger.With("restart", i))),
			)
			res, err := solve(x, opts)
			if err != nil {
				return fmt.Errorf("restart %d: %w", i, err)
			}
			runs[i].result = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return runs, nil
}

// logReporter forwards solver events to slog.
func logReporter(logger *slog.Logger) decomp.Reporter {
	return func(e decomp.Event) {
		switch e.Kind {
		case decomp.EventSweep:
			logger.Debug(e.Message, "sweep", e.Iteration, "error", e.Error)
		case decomp.EventConverged:
			logger.Info(e.Message, "error", e.Error)
		case decomp.EventMaxIter:
			logger.Warn(e.Message, "sweeps", e.Iteration, "error", e.Error)
		}
	}
}
