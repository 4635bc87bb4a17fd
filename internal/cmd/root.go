// Package cmd implements the subproc CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "subproc",
	Short: "run a child process with output streaming and signal policies",
	Long: `subproc runs a single child process, streams its stdout/stderr,
and optionally enforces an escalating-signal policy when the process
is silent or runs too long.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
