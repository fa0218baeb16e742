// internal/database/commit_activities.sql.go
package database

import (
	"context"
	"time"
)

const insertCommitActivity = `-- name: InsertCommitActivity :execrows
INSERT INTO "CommitActivities" (repo, date, commits, authors)
VALUES ($1, $2, $3, $4)
ON CONFLICT (repo, date) DO NOTHING
`

type InsertCommitActivityParams struct {
	Repo    string    `json:"repo"`
	Date    time.Time `json:"date"`
	Commits int32     `json:"commits"`
	Authors []string  `json:"authors"`
}

// InsertCommitActivity returns 0 when a row for the same repo and date already exists.
func (q *Queries) InsertCommitActivity(ctx context.Context, arg InsertCommitActivityParams) (int64, error) {
	authors := arg.Authors
	if authors == nil {
		authors = []string{}
	}
	result, err := q.db.Exec(ctx, insertCommitActivity,
		arg.Repo,
		arg.Date,
		arg.Commits,
		authors,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listCommitActivities = `-- name: ListCommitActivities :many
SELECT repo, date, commits, authors
FROM "CommitActivities"
WHERE repo = $1 AND date BETWEEN $2 AND $3
ORDER BY date DESC
`

type ListCommitActivitiesParams struct {
	Repo  string    `json:"repo"`
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

func (q *Queries) ListCommitActivities(ctx context.Context, arg ListCommitActivitiesParams) ([]CommitActivity, error) {
	rows, err := q.db.Query(ctx, listCommitActivities, arg.Repo, arg.Since, arg.Until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CommitActivity{}
	for rows.Next() {
		var i CommitActivity
		if err := rows.Scan(
			&i.Repo,
			&i.Date,
			&i.Commits,
			&i.Authors,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
