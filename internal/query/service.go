// internal/query/service.go
package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github-top-tracker/internal/database"
	custom_errors "github-top-tracker/internal/errors"
)

// TopLimit caps the ranked listing.
const TopLimit = 100

// Service answers the read API from the tracker tables.
type Service struct {
	db     database.Querier
	logger *slog.Logger
}

// NewService creates a new Service instance.
func NewService(db database.Querier, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListTop returns the tracked repositories ordered by sortField in sortOrder.
// Both values are checked against the closed sets in package database before
// any SQL is built.
func (s *Service) ListTop(ctx context.Context, sortField, sortOrder string) ([]database.Repository, error) {
	field, ok := database.ParseSortField(sortField)
	if !ok {
		return nil, &custom_errors.ValidationError{Field: "sorting_field", Reason: fmt.Sprintf("unsupported value %q", sortField)}
	}
	order, ok := database.ParseSortOrder(sortOrder)
	if !ok {
		return nil, &custom_errors.ValidationError{Field: "sorting_order", Reason: fmt.Sprintf("unsupported value %q", sortOrder)}
	}

	repos, err := s.db.ListTopRepositories(ctx, database.ListTopRepositoriesParams{
		SortField: field,
		SortOrder: order,
		Limit:     TopLimit,
	})
	if err != nil {
		return nil, database.WrapError("list top repositories", err)
	}
	return repos, nil
}

// GetActivity returns the daily activity of one repository between since and
// until inclusive, newest first.
func (s *Service) GetActivity(ctx context.Context, fullName string, since, until time.Time) ([]database.CommitActivity, error) {
	if since.After(until) {
		return nil, &custom_errors.ValidationError{Field: "since", Reason: "starting date cannot be more than end date"}
	}

	activities, err := s.db.ListCommitActivities(ctx, database.ListCommitActivitiesParams{
		Repo:  fullName,
		Since: since,
		Until: until,
	})
	if err != nil {
		return nil, database.WrapError("list commit activities", err)
	}
	return activities, nil
}

// GetRepository returns one tracked repository.
func (s *Service) GetRepository(ctx context.Context, fullName string) (database.Repository, error) {
	repo, err := s.db.GetRepository(ctx, fullName)
	if database.IsNotFound(err) {
		return database.Repository{}, fmt.Errorf("repository %q: %w", fullName, custom_errors.ErrNotFound)
	}
	if err != nil {
		return database.Repository{}, database.WrapError("get repository", err)
	}
	return repo, nil
}
