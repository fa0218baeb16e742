// internal/store/writer.go
package store

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github-top-tracker/internal/database"
	"github-top-tracker/internal/model"
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Writer persists one ingestion run.
type Writer struct {
	db     TxBeginner
	logger *slog.Logger
}

// NewWriter creates a new Writer instance.
func NewWriter(db TxBeginner, logger *slog.Logger) *Writer {
	return &Writer{db: db, logger: logger}
}

// Write stores the repository snapshots and then their daily activity, each
// in its own transaction. The snapshots stay committed if the activity phase
// fails; a later run fills the activity in.
func (w *Writer) Write(ctx context.Context, repos []model.Repository) error {
	err := w.inTransaction(ctx, "upsert repositories", func(q database.Querier) error {
		return w.upsertRepositories(ctx, q, repos)
	})
	if err != nil {
		return err
	}

	return w.inTransaction(ctx, "insert commit activities", func(q database.Querier) error {
		return w.insertActivities(ctx, q, repos)
	})
}

// inTransaction runs fn against a transaction and commits it if fn succeeds.
func (w *Writer) inTransaction(ctx context.Context, op string, fn func(q database.Querier) error) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return database.WrapError(op, err)
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	if err := fn(database.New(tx)); err != nil {
		return database.WrapError(op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return database.WrapError(op, err)
	}
	return nil
}

func (w *Writer) upsertRepositories(ctx context.Context, q database.Querier, repos []model.Repository) error {
	for _, r := range repos {
		err := q.UpsertRepository(ctx, database.UpsertRepositoryParams{
			Repo:        r.FullName,
			Owner:       r.Owner,
			PositionCur: int32(r.Position),
			Stars:       int32(r.StarsCount),
			Watchers:    int32(r.WatchersCount),
			Forks:       int32(r.ForksCount),
			OpenIssues:  int32(r.OpenIssuesCount),
			Language:    r.Language,
		})
		if err != nil {
			return err
		}
	}
	w.logger.Info("Upserted repositories", "count", len(repos))
	return nil
}

func (w *Writer) insertActivities(ctx context.Context, q database.Querier, repos []model.Repository) error {
	var inserted, skipped int
	for _, r := range repos {
		for _, a := range r.Activity {
			n, err := q.InsertCommitActivity(ctx, database.InsertCommitActivityParams{
				Repo:    a.Repo,
				Date:    a.Date,
				Commits: int32(a.Commits),
				Authors: a.Authors,
			})
			if err != nil {
				return err
			}
			if n == 0 {
				skipped++
				continue
			}
			inserted++
		}
	}
	w.logger.Info("Inserted commit activities", "inserted", inserted, "already_recorded", skipped)
	return nil
}
