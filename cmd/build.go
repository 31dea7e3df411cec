package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/llmstxt-archiver/internal/archive"
	"github.com/JakeFAU/llmstxt-archiver/internal/clock/system"
	"github.com/JakeFAU/llmstxt-archiver/internal/config"
	"github.com/JakeFAU/llmstxt-archiver/internal/fetcher"
	"github.com/JakeFAU/llmstxt-archiver/internal/logging"
)

// newBuildCmd creates the 'build' subcommand, which runs the full archival
// pipeline.
func newBuildCmd() *cobra.Command {
	var (
		resume bool
		siteID string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch all corpus content and write the archive manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, archive.Options{
				Resume:     resume,
				SiteFilter: siteID,
				DryRun:     dryRun,
			})
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false,
		"skip URLs with existing SUCCESS manifest entries")
	cmd.Flags().StringVar(&siteID, "site", "",
		"only archive the given site identifier")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"report the fetch plan without any network calls")

	return cmd
}

func runBuild(cmd *cobra.Command, opts archive.Options) error {
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	contentFetcher, err := fetcher.New(fetcher.Config{
		UserAgent:         cfg.Protocol.UserAgent,
		TimeoutSeconds:    cfg.Protocol.FetchTimeoutSeconds,
		RateLimitInterval: cfg.RateLimitInterval(),
		RespectRobots:     cfg.Protocol.RespectRobotsTxt,
		JSMinHTMLBytes:    cfg.Protocol.JSMinHTMLBytes,
		JSMinTextChars:    cfg.Protocol.JSMinTextChars,
	}, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	builder := archive.NewBuilder(cfg, opts, contentFetcher, system.New(), logger)

	// An interrupt flushes whatever has been recorded, then exits with a
	// distinct status so operators know a resume is safe.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Warn("Interrupted; writing partial manifest")
		if ferr := builder.Flush(); ferr != nil {
			logger.Error("Partial manifest write failed", zap.Error(ferr))
		} else {
			logger.Info("Partial manifest saved; re-run with --resume to continue")
		}
		logger.Sync() //nolint:errcheck // exiting
		os.Exit(130)
	}()

	if err := builder.Run(cmd.Context()); err != nil {
		logger.Error("Fatal error; attempting partial manifest save", zap.Error(err))
		if ferr := builder.Flush(); ferr != nil {
			logger.Error("Partial manifest write failed", zap.Error(ferr))
		}
		return err
	}
	return nil
}
