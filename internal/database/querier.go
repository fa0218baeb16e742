// internal/database/querier.go
package database

import (
	"context"
)

type Querier interface {
	GetRepository(ctx context.Context, repo string) (Repository, error)
	InsertCommitActivity(ctx context.Context, arg InsertCommitActivityParams) (int64, error)
	ListCommitActivities(ctx context.Context, arg ListCommitActivitiesParams) ([]CommitActivity, error)
	ListTopRepositories(ctx context.Context, arg ListTopRepositoriesParams) ([]Repository, error)
	UpsertRepository(ctx context.Context, arg UpsertRepositoryParams) error
}

var _ Querier = (*Queries)(nil)
