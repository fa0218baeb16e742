// internal/ingest/ingester.go
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github-top-tracker/internal/activity"
	"github-top-tracker/internal/model"
)

// ActivityWindow is how far back commit activity is fetched on every run.
const ActivityWindow = 7 * 24 * time.Hour

// RepositoryFetcher is the GitHub side of a run.
type RepositoryFetcher interface {
	SearchTopRepositories(ctx context.Context) ([]model.Repository, error)
	GetRecentCommits(ctx context.Context, owner, name string, since time.Time) ([]model.Commit, error)
}

// SnapshotWriter persists a run.
type SnapshotWriter interface {
	Write(ctx context.Context, repos []model.Repository) error
}

// Ingester orchestrates the fetching and storing of data.
type Ingester struct {
	gh          RepositoryFetcher
	writer      SnapshotWriter
	logger      *slog.Logger
	concurrency int
	now         func() time.Time
}

// NewIngester creates a new Ingester instance. concurrency bounds how many
// repositories have their commits fetched at once; 1 fetches them in rank order.
func NewIngester(gh RepositoryFetcher, writer SnapshotWriter, logger *slog.Logger, concurrency int) *Ingester {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Ingester{
		gh:          gh,
		writer:      writer,
		logger:      logger,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Start runs an ingestion immediately and then once per interval until ctx is done.
// A failed run is logged and the next tick tries again from scratch.
func (in *Ingester) Start(ctx context.Context, interval time.Duration) {
	in.logger.Info("Starting ingester", "interval", interval.String(), "concurrency", in.concurrency)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	in.runLogged(ctx) // Initial run

	for {
		select {
		case <-ticker.C:
			in.runLogged(ctx)
		case <-ctx.Done():
			in.logger.Info("Ingester shutting down", "reason", ctx.Err())
			return
		}
	}
}

func (in *Ingester) runLogged(ctx context.Context) {
	if err := in.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		in.logger.Error("Ingestion run failed", "error", err)
	}
}

// Run performs one ingestion: rank the top repositories, fetch the last
// week of commits for each, aggregate them per day and write everything.
// Any fetch failure aborts the run before the database is touched.
func (in *Ingester) Run(ctx context.Context) error {
	in.logger.Info("Starting ingestion run")

	repos, err := in.gh.SearchTopRepositories(ctx)
	if err != nil {
		return err
	}
	in.logger.Info("Fetched top repositories", "count", len(repos))

	since := activity.CalendarDate(in.now().UTC().Add(-ActivityWindow))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.concurrency)

	for i := range repos {
		repo := &repos[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			logger := in.logger.With("owner", repo.Owner, "repo", repo.Name)

			commits, err := in.gh.GetRecentCommits(gctx, repo.Owner, repo.Name, since)
			if err != nil {
				return err
			}
			repo.Activity = activity.Aggregate(commits).Rows(repo.FullName)
			logger.Debug("Aggregated commit activity", "commits", len(commits), "days", len(repo.Activity))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := in.writer.Write(ctx, repos); err != nil {
		return err
	}
	in.logger.Info("Ingestion run finished", "repositories", len(repos), "since", since.Format(time.DateOnly))
	return nil
}
