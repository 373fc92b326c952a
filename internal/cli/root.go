// Package cli wires the rollover commands. Each mutating command
// follows the same flow: fetch the project, plan a change set, preview
// it, confirm, apply sequentially, and record a run report.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/finance-automation/rollover/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "rollover",
	Short:   "Monthly maintenance for recurring Asana projects",
	Long:    `Rollover prepares a recurring Asana project for a new monthly cycle: it resets completed tasks, rolls month labels forward in task names, and shifts start/due dates to the same working-day position of the next month.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(resetCmd, renameCmd, shiftCmd, historyCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
