// internal/database/repositories.sql.go
package database

import (
	"context"
	"fmt"
)

const upsertRepository = `-- name: UpsertRepository :exec
INSERT INTO "Repositories"
    (repo, owner, position_cur, position_prev, stars, watchers, forks, open_issues, language)
VALUES ($1, $2, $3, $3, $4, $5, $6, $7, $8)
ON CONFLICT (repo) DO UPDATE
SET
    owner = EXCLUDED.owner,
    position_prev = "Repositories".position_cur,
    position_cur = EXCLUDED.position_cur,
    stars = EXCLUDED.stars,
    watchers = EXCLUDED.watchers,
    forks = EXCLUDED.forks,
    open_issues = EXCLUDED.open_issues,
    language = EXCLUDED.language
`

type UpsertRepositoryParams struct {
	Repo        string `json:"repo"`
	Owner       string `json:"owner"`
	PositionCur int32  `json:"position_cur"`
	Stars       int32  `json:"stars"`
	Watchers    int32  `json:"watchers"`
	Forks       int32  `json:"forks"`
	OpenIssues  int32  `json:"open_issues"`
	Language    string `json:"language"`
}

// UpsertRepository inserts a snapshot, or moves the stored current position
// into position_prev before overwriting it. Every SET expression sees the row
// as it was before the update, so the swap happens within the one statement.
func (q *Queries) UpsertRepository(ctx context.Context, arg UpsertRepositoryParams) error {
	_, err := q.db.Exec(ctx, upsertRepository,
		arg.Repo,
		arg.Owner,
		arg.PositionCur,
		arg.Stars,
		arg.Watchers,
		arg.Forks,
		arg.OpenIssues,
		arg.Language,
	)
	return err
}

const getRepository = `-- name: GetRepository :one
SELECT repo, owner, position_cur, position_prev, stars, watchers, forks, open_issues, language
FROM "Repositories"
WHERE repo = $1
`

func (q *Queries) GetRepository(ctx context.Context, repo string) (Repository, error) {
	row := q.db.QueryRow(ctx, getRepository, repo)
	var i Repository
	err := row.Scan(
		&i.Repo,
		&i.Owner,
		&i.PositionCur,
		&i.PositionPrev,
		&i.Stars,
		&i.Watchers,
		&i.Forks,
		&i.OpenIssues,
		&i.Language,
	)
	return i, err
}

// The ORDER BY clause cannot be a bound parameter. It is filled in only from
// the column names of SortField, never from caller text.
const listTopRepositories = `-- name: ListTopRepositories :many
SELECT repo, owner, position_cur, position_prev, stars, watchers, forks, open_issues, language
FROM "Repositories"
ORDER BY %s %s, repo ASC
LIMIT $1
`

type ListTopRepositoriesParams struct {
	SortField SortField
	SortOrder SortOrder
	Limit     int32
}

func (q *Queries) ListTopRepositories(ctx context.Context, arg ListTopRepositoriesParams) ([]Repository, error) {
	column, ok := arg.SortField.column()
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", string(arg.SortField))
	}
	direction, ok := arg.SortOrder.keyword()
	if !ok {
		return nil, fmt.Errorf("unsupported sort order %q", string(arg.SortOrder))
	}

	rows, err := q.db.Query(ctx, fmt.Sprintf(listTopRepositories, column, direction), arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Repository{}
	for rows.Next() {
		var i Repository
		if err := rows.Scan(
			&i.Repo,
			&i.Owner,
			&i.PositionCur,
			&i.PositionPrev,
			&i.Stars,
			&i.Watchers,
			&i.Forks,
			&i.OpenIssues,
			&i.Language,
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
