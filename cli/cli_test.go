// SPDX-License-Identifier: MIT
package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvtensor/cli"
	"github.com/katalvlaran/lvtensor/decomp"
)

type jsonReport struct {
	Method   string    `json:"method"`
	Shape    []int     `json:"shape"`
	Ranks    []int     `json:"ranks"`
	Best     int       `json:"best"`
	Error    float64   `json:"error"`
	Status   string    `json:"status"`
	Weights  []float64 `json:"weights"`
	Factors  [][2]int  `json:"factors"`
	Core     []int     `json:"core"`
	Restarts []struct {
		Index      int     `json:"index"`
		Seed       int64   `json:"seed"`
		Status     string  `json:"status"`
		Iterations int     `json:"iterations"`
		Error      float64 `json:"error"`
	} `json:"restarts"`
}

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewCLI()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func decodeReport(t *testing.T, out string) jsonReport {
	t.Helper()
	var rep jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	return rep
}

func TestCPCommand_JSON(t *testing.T) {
	out, logs, err := run(t, "cp",
		"--shape", "4,5,6", "--rank", "2",
		"--restarts", "3", "--workers", "2",
		"--max-iter", "500", "--tol", "1e-12",
		"--format", "json",
	)
	require.NoError(t, err)

	rep := decodeReport(t, out)
	require.Equal(t, "cp", rep.Method)
	require.Equal(t, []int{4, 5, 6}, rep.Shape)
	require.Equal(t, []int{2, 2, 2}, rep.Ranks)
	require.Len(t, rep.Restarts, 3)
	require.Less(t, rep.Error, 1e-5)
	require.Equal(t, [][2]int{{4, 2}, {5, 2}, {6, 2}}, rep.Factors)
	require.Len(t, rep.Weights, 2)
	require.Nil(t, rep.Core)
	for i, r := range rep.Restarts {
		require.Equal(t, i, r.Index)
		require.LessOrEqual(t, rep.Error, r.Error)
	}
	require.Contains(t, logs, "best restart")
}

func TestCPCommand_Deterministic(t *testing.T) {
	args := []string{"cp", "--shape", "3,4,5", "--rank", "2", "--restarts", "4", "--max-iter", "20", "--seed", "9", "--format", "json"}
	a, _, err := run(t, args...)
	require.NoError(t, err)
	b, _, err := run(t, append(args, "--workers", "1")...)
	require.NoError(t, err)
	require.Equal(t, a, b)

	rep := decodeReport(t, a)
	require.Equal(t, decomp.DeriveSeed(9, 0), rep.Restarts[0].Seed)
	require.Equal(t, decomp.DeriveSeed(9, 3), rep.Restarts[3].Seed)
}

func TestCPCommand_Table(t *testing.T) {
	out, _, err := run(t, "cp", "--shape", "3,4,5", "--rank", "1", "--restarts", "2", "--noise", "0.01",
		"--solver", "least-squares", "--normalize")
	require.NoError(t, err)
	require.Contains(t, out, "RESTART")
	require.Contains(t, out, "ERROR")
	require.Contains(t, out, "*")
	require.Contains(t, out, "factors [[3 1] [4 1] [5 1]]")
	require.Contains(t, out, "weights")
}

func TestTuckerCommand(t *testing.T) {
	out, _, err := run(t, "tucker", "--shape", "5,6,4", "--ranks", "2,3,2", "--format", "json")
	require.NoError(t, err)

	rep := decodeReport(t, out)
	require.Equal(t, "tucker", rep.Method)
	require.Equal(t, []int{2, 3, 2}, rep.Core)
	require.Equal(t, [][2]int{{5, 2}, {6, 3}, {4, 2}}, rep.Factors)
	require.Less(t, rep.Error, 1e-10)
	require.Equal(t, decomp.Converged.String(), rep.Status)
	require.Nil(t, rep.Weights)

	out, _, err = run(t, "tucker", "--shape", "5,6,4", "--ranks", "2,3,2", "--init", "random", "--max-iter", "1", "--tol", "0")
	require.NoError(t, err)
	require.Contains(t, out, "core [2 3 2]")
}

func TestEnvCommand(t *testing.T) {
	t.Setenv("LVTENSOR_MAX_ITER", "42")
	out, _, err := run(t, "env")
	require.NoError(t, err)
	require.Contains(t, out, "LVTENSOR_MAX_ITER")
	require.Contains(t, out, "42")
	require.Contains(t, out, "LVTENSOR_WORKERS")
}

func TestEnvDefaultsFeedFlags(t *testing.T) {
	t.Setenv("LVTENSOR_MAX_ITER", "1")
	t.Setenv("LVTENSOR_TOL", "0")
	out, _, err := run(t, "cp", "--shape", "3,3,3", "--rank", "2", "--format", "json")
	require.NoError(t, err)
	rep := decodeReport(t, out)
	require.Equal(t, 1, rep.Restarts[0].Iterations)
}

func TestCommands_Errors(t *testing.T) {
	tests := map[string][]string{
		"format":   {"cp", "--format", "xml"},
		"solver":   {"cp", "--solver", "gradient"},
		"init":     {"tucker", "--init", "zeros"},
		"restarts": {"cp", "--restarts", "0"},
		"workers":  {"cp", "--workers", "0"},
		"max iter": {"tucker", "--max-iter", "0"},
		"tol":      {"cp", "--tol", "-1"},
	}
	for name, args := range tests {
		_, _, err := run(t, args...)
		require.ErrorContains(t, err, "invalid flag value", name)
	}

	_, _, err := run(t, "cp", "--shape", "4,5", "--rank", "1")
	require.ErrorIs(t, err, decomp.ErrTensorOrder)
	_, _, err = run(t, "tucker", "--shape", "4,5,6", "--ranks", "5,1,1")
	require.ErrorIs(t, err, decomp.ErrRankOutOfRange)
	_, _, err = run(t, "cp", "--noise", "-0.5")
	require.Error(t, err)
	_, _, err = run(t, "cp", "extra")
	require.Error(t, err)
}

func TestRootPrintsUsage(t *testing.T) {
	out, _, err := run(t)
	require.NoError(t, err)
	require.Contains(t, out, "tucker")
	require.Contains(t, out, "env")
}
