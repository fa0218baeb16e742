// internal/database/mocks/querier.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github-top-tracker/internal/database"
)

// Querier is a mock of the database.Querier interface.
type Querier struct {
	mock.Mock
}

var _ database.Querier = (*Querier)(nil)

func (m *Querier) GetRepository(ctx context.Context, repo string) (database.Repository, error) {
	args := m.Called(ctx, repo)
	return args.Get(0).(database.Repository), args.Error(1)
}
func (m *Querier) InsertCommitActivity(ctx context.Context, arg database.InsertCommitActivityParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *Querier) ListCommitActivities(ctx context.Context, arg database.ListCommitActivitiesParams) ([]database.CommitActivity, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.CommitActivity), args.Error(1)
}
func (m *Querier) ListTopRepositories(ctx context.Context, arg database.ListTopRepositoriesParams) ([]database.Repository, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.Repository), args.Error(1)
}
func (m *Querier) UpsertRepository(ctx context.Context, arg database.UpsertRepositoryParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
