// SPDX-License-Identifier: MIT

// Package cli is the lvtensor command line: build a synthetic low-rank tensor,
// decompose it with one or more seeded restarts, and report the result.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvtensor/envconfig"
)

// appendEnvDocs lists the environment variables a command honors in its usage text.
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-20s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// newLogger writes text records to the command's stderr at the environment's level.
func newLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: envconfig.LogLevel()}))
}

// NewCLI builds the root command with every subcommand attached.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "lvtensor",
		Short:         "Dense CP and Tucker tensor decompositions",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	cpCmd := newCPCmd()
	tuckerCmd := newTuckerCmd()
	envCmd := newEnvCmd()

	envVars := envconfig.AsMap()
	solveEnvs := []envconfig.EnvVar{
		envVars[envconfig.KeyDebug],
		envVars[envconfig.KeyMaxIter],
		envVars[envconfig.KeyTol],
		envVars[envconfig.KeySeed],
		envVars[envconfig.KeyWorkers],
	}
	for _, cmd := range []*cobra.Command{cpCmd, tuckerCmd} {
		appendEnvDocs(cmd, solveEnvs)
	}

	rootCmd.AddCommand(cpCmd, tuckerCmd, envCmd)

	return rootCmd
}
