// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvtensor/tensor"
)

// trace is what the sweep loop hands back to the result builders.
type trace struct {
	err     float64
	iters   int
	status  Status
	history []float64
}

// runALS drives the shared state machine: sweep, check convergence, repeat
// until Converged or MaxIterExceeded. sweep updates every factor once and
// returns the relative error of the current model.
//
// Converged when |err_prev − err| < o.Tol (from the second sweep on) or
// err < o.AbsTol. A sweep error aborts the solve.
func runALS(o Options, sweep func() (float64, error)) (trace, error) {
	tr := trace{
		status:  MaxIterExceeded,
		history: make([]float64, 0, o.MaxIter),
	}
	prev := math.Inf(1)
	for it := 1; it <= o.MaxIter; it++ {
		cur, err := sweep()
		if err != nil {
			return trace{}, fmt.Errorf("sweep %d: %w", it, err)
		}
		tr.err, tr.iters = cur, it
		tr.history = append(tr.history, cur)
		report(o.Reporter, Event{
			Kind:      EventSweep,
			Iteration: it,
			Error:     cur,
			Message:   fmt.Sprintf("sweep %d: relative error %.6e", it, cur),
		})
		if math.Abs(prev-cur) < o.Tol || cur < o.AbsTol {
			tr.status = Converged
			break
		}
		prev = cur
	}

	if tr.status == Converged {
		report(o.Reporter, Event{
			Kind:      EventConverged,
			Iteration: tr.iters,
			Error:     tr.err,
			Message:   fmt.Sprintf("converged after %d sweeps", tr.iters),
		})
	} else {
		report(o.Reporter, Event{
			Kind:      EventMaxIter,
			Iteration: tr.iters,
			Error:     tr.err,
			Message:   "iteration cap reached without convergence",
		})
	}

	return tr, nil
}

func report(r Reporter, e Event) {
	if r != nil {
		r(e)
	}
}

// relativeError returns ‖t − approx‖/‖t‖, or ‖approx‖ when t is all zeros.
func relativeError(t, approx *tensor.Dense, normT float64) (float64, error) {
	if normT == 0 {
		return approx.Norm(), nil
	}
	d, err := tensor.Distance(t, approx)
	if err != nil {
		return 0, err
	}

	return d / normT, nil
}

// others returns the modes 0..n-1 except skip, ascending.
func others(n, skip int) []int {
	out := make([]int, 0, n-1)
	for m := 0; m < n; m++ {
		if m != skip {
			out = append(out, m)
		}
	}

	return out
}
