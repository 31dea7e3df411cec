// Package cmd defines the CLI commands for the llmstxt-archiver executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llmstxt-archiver",
		Short: "Builds an immutable content archive for the benchmark corpus",
		Long: `llmstxt-archiver fetches every document cited by the benchmark corpus in
both its HTML rendering (Condition A) and its Markdown rendering
(Condition B), storing the results in a content-addressed archive with a
manifest recording every fetch attempt, successful or not.

The archive is reproducible: re-running with --resume skips URLs that
already have SUCCESS manifest entries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "benchmark-config.json",
		"path to the benchmark config file")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(newBuildCmd(), newPlanCmd(), newValidateCmd())

	return cmd
}

// Execute is the main entry point. The process exits 1 on any fatal error;
// the interrupt path inside build exits 130 after a manifest flush.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
