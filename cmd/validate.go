package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JakeFAU/llmstxt-archiver/internal/archive"
	"github.com/JakeFAU/llmstxt-archiver/internal/config"
	"github.com/JakeFAU/llmstxt-archiver/internal/corpus"
	"github.com/JakeFAU/llmstxt-archiver/internal/logging"
)

// newValidateCmd creates the 'validate' subcommand: coverage validation of
// an existing archive manifest against the corpus, with no network calls.
// Findings are advisory output for manual follow-up; the command exits 0
// even when entries are flagged.
func newValidateCmd() *cobra.Command {
	var siteID string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Reconcile an existing manifest against the question corpus",
		RunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			sites, err := corpus.LoadSites(cfg.Paths.SiteList, siteID)
			if err != nil {
				return err
			}
			questions, err := corpus.LoadQuestions(cfg.Paths.Questions, sites)
			if err != nil {
				return err
			}
			doc, err := archive.LoadDocument(cfg.Paths.ArchiveManifest)
			if err != nil {
				return err
			}

			archive.ValidateCoverage(questions, doc.Entries).Log(logger)
			return nil
		},
	}

	cmd.Flags().StringVar(&siteID, "site", "", "only validate the given site identifier")

	return cmd
}
