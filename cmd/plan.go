package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JakeFAU/llmstxt-archiver/internal/archive"
)

// newPlanCmd creates the 'plan' subcommand: the dry-run report as a
// first-class command.
func newPlanCmd() *cobra.Command {
	var siteID string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Report the fetch plan and a time estimate without fetching",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, archive.Options{
				SiteFilter: siteID,
				DryRun:     true,
			})
		},
	}

	cmd.Flags().StringVar(&siteID, "site", "", "only plan the given site identifier")

	return cmd
}
