// cmd/tracker/ingest.go
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github-top-tracker/internal/github"
	"github-top-tracker/internal/ingest"
	"github-top-tracker/internal/store"
)

var ingestEvery time.Duration

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch the top repositories and their recent commits into the database",
	Long: "Run one ingestion and exit, which suits cron or a cloud function trigger. " +
		"With --every (or INGEST_INTERVAL) the command keeps running and ingests on that interval.",
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().DurationVar(&ingestEvery, "every", 0, "repeat the ingestion on this interval instead of exiting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if err := cfg.RequireGithubToken(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	dbpool, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	opts := []github.Option{github.WithExpectedRepositories(cfg.TrackedRepos)}
	if cfg.GithubAPIURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GithubAPIURL))
	}
	ghClient, err := github.NewClient(cfg.GithubToken, logger.With("component", "github"), opts...)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	writer := store.NewWriter(dbpool, logger.With("component", "store"))
	ingester := ingest.NewIngester(ghClient, writer, logger.With("component", "ingest"), cfg.FetchConcurrency)

	interval := cfg.IngestInterval
	if cmd.Flags().Changed("every") {
		interval = ingestEvery
	}
	if interval > 0 {
		ingester.Start(ctx, interval)
		return nil
	}
	return ingester.Run(ctx)
}
