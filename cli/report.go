// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/katalvlaran/lvtensor/tensor"
)

// report is the printable outcome of a decomposition command.
type report struct {
	Method   string          `json:"method"`
	Shape    []int           `json:"shape"`
	Ranks    []int           `json:"ranks"`
	Best     int             `json:"best"`
	Error    float64         `json:"error"`
	Status   string          `json:"status"`
	Weights  []float64       `json:"weights,omitempty"`
	Factors  [][2]int        `json:"factors"`
	Core     []int           `json:"core,omitempty"`
	Restarts []restartReport `json:"restarts"`
}

type restartReport struct {
	Index      int     `json:"index"`
	Seed       int64   `json:"seed"`
	Status     string  `json:"status"`
	Iterations int     `json:"iterations"`
	Error      float64 `json:"error"`
}

// newReport picks the restart with the lowest error; ties go to the lowest index.
func newReport(method string, shape tensor.Shape, ranks []int, runs []restart) report {
	rep := report{
		Method:   method,
		Shape:    []int(shape),
		Ranks:    ranks,
		Restarts: make([]restartReport, len(runs)),
	}
	for i, r := range runs {
		rep.Restarts[i] = restartReport{
			Index:      r.index,
			Seed:       r.seed,
			Status:     r.result.Status.String(),
			Iterations: r.result.Iterations,
			Error:      r.result.Error,
		}
		if r.result.Error < runs[rep.Best].result.Error {
			rep.Best = i
		}
	}

	best := runs[rep.Best].result
	rep.Error = best.Error
	rep.Status = best.Status.String()
	rep.Weights = best.Weights
	for _, a := range best.Factors {
		r, c := a.Shape()
		rep.Factors = append(rep.Factors, [2]int{r, c})
	}
	if best.Core != nil {
		rep.Core = []int(best.Core.Shape())
	}

	return rep
}

func writeReport(w io.Writer, format string, rep report) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	}

	if _, err := fmt.Fprintf(w, "%s  shape %v  ranks %v\n\n", rep.Method, rep.Shape, rep.Ranks); err != nil {
		return err
	}

	data := make([][]string, 0, len(rep.Restarts))
	for i, r := range rep.Restarts {
		mark := ""
		if i == rep.Best {
			mark = "*"
		}
		data = append(data, []string{
			strconv.Itoa(r.Index) + mark,
			strconv.FormatInt(r.Seed, 10),
			r.Status,
			strconv.Itoa(r.Iterations),
			strconv.FormatFloat(r.Error, 'e', 3, 64),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"RESTART", "SEED", "STATUS", "SWEEPS", "ERROR"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	_, err := fmt.Fprintf(w, "\nfactors %v", rep.Factors)
	if err == nil && rep.Core != nil {
		_, err = fmt.Fprintf(w, "  core %v", rep.Core)
	}
	if err == nil && rep.Weights != nil {
		_, err = fmt.Fprintf(w, "  weights %v", rep.Weights)
	}
	if err == nil {
		_, err = fmt.Fprintln(w)
	}

	return err
}
