// Package cmd wires the mmc subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Prot10/MyMacCleaner-sub003/internal/logging"
)

var (
	// Global flags
	debug  bool
	dryRun bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "mmc",
	Short: "Reclaim disk space safely",
	Long: `mmc - reclaim disk space safely.

Scans caches, logs, and application leftovers, validates every delete
candidate against a deny-by-default safety policy, and moves approved
items to the Trash so nothing is ever lost for good.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(debug, "")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(leftoversCmd)
	rootCmd.AddCommand(permsCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
