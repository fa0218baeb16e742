// internal/api/handler_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github-top-tracker/internal/database"
	"github-top-tracker/internal/database/mocks"
	"github-top-tracker/internal/query"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func setupRouter(t *testing.T, pingErr error) (*mocks.Querier, http.Handler) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mockQ := new(mocks.Querier)
	return mockQ, NewRouter(query.NewService(mockQ, logger), stubPinger{err: pingErr}, logger)
}

func doGet(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_ListTop(t *testing.T) {
	t.Run("defaults to stars descending", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)
		mockQ.On("ListTopRepositories", mock.Anything, database.ListTopRepositoriesParams{
			SortField: database.SortByStars, SortOrder: database.SortDesc, Limit: query.TopLimit,
		}).Return([]database.Repository{
			{Repo: "octo/alpha", Owner: "octo", PositionCur: 1, PositionPrev: 2, Stars: 900, Watchers: 900, Forks: 5, OpenIssues: 1, Language: "Go"},
		}, nil).Once()

		rec := doGet(router, "/api/repos/top100")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"repo":"octo/alpha","owner":"octo","position_cur":1,"position_prev":2,"stars":900,"watchers":900,"forks":5,"open_issues":1,"language":"Go"}]`, rec.Body.String())
		mockQ.AssertExpectations(t)
	})

	t.Run("passes an allowed field and order through", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)
		mockQ.On("ListTopRepositories", mock.Anything, database.ListTopRepositoriesParams{
			SortField: database.SortByOpenIssues, SortOrder: database.SortAsc, Limit: query.TopLimit,
		}).Return([]database.Repository{}, nil).Once()

		rec := doGet(router, "/api/repos/top100?sorting_field=open_issues&sorting_order=asc")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("rejects a field outside the allow-list", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)

		rec := doGet(router, "/api/repos/top100?sorting_field=stars%3BDROP%20TABLE%20x")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockQ.AssertNotCalled(t, "ListTopRepositories")
	})

	t.Run("rejects an unknown order", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)

		rec := doGet(router, "/api/repos/top100?sorting_order=random")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockQ.AssertNotCalled(t, "ListTopRepositories")
	})

	t.Run("returns 500 when the pool cannot be acquired", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)
		dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		mockQ.On("ListTopRepositories", mock.Anything, mock.Anything).Return([]database.Repository(nil), dialErr).Once()

		rec := doGet(router, "/api/repos/top100")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Database unavailable")
	})
}

func TestHandler_GetActivity(t *testing.T) {
	t.Run("returns days newest first with dates as plain dates", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)
		mockQ.On("ListCommitActivities", mock.Anything, database.ListCommitActivitiesParams{
			Repo:  "octo/alpha",
			Since: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Until: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		}).Return([]database.CommitActivity{
			{Repo: "octo/alpha", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Commits: 3, Authors: []string{"alice", "bob"}},
			{Repo: "octo/alpha", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Commits: 1, Authors: nil},
		}, nil).Once()

		rec := doGet(router, "/api/repos/octo/alpha/activity?since=2024-03-01&until=2024-03-07")

		require.Equal(t, http.StatusOK, rec.Code)
		var body []CommitActivityInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, CommitActivityInfo{Date: "2024-03-05", Commits: 3, Authors: []string{"alice", "bob"}}, body[0])
		assert.Equal(t, []string{}, body[1].Authors)
	})

	t.Run("returns 400 when since is after until", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)

		rec := doGet(router, "/api/repos/octo/alpha/activity?since=2024-03-07&until=2024-03-01")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "starting date cannot be more than end date")
		mockQ.AssertNotCalled(t, "ListCommitActivities")
	})

	t.Run("returns 400 for a missing or malformed date", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)

		assert.Equal(t, http.StatusBadRequest, doGet(router, "/api/repos/octo/alpha/activity?until=2024-03-01").Code)
		assert.Equal(t, http.StatusBadRequest, doGet(router, "/api/repos/octo/alpha/activity?since=03/01/2024&until=2024-03-07").Code)
		mockQ.AssertNotCalled(t, "ListCommitActivities")
	})
}

func TestHandler_GetRepository(t *testing.T) {
	t.Run("returns 404 for an untracked repository", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)
		mockQ.On("GetRepository", mock.Anything, "octo/missing").Return(database.Repository{}, pgx.ErrNoRows).Once()

		rec := doGet(router, "/api/repos/octo/missing")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns the snapshot", func(t *testing.T) {
		mockQ, router := setupRouter(t, nil)
		mockQ.On("GetRepository", mock.Anything, "octo/alpha").Return(database.Repository{Repo: "octo/alpha", Owner: "octo", PositionCur: 3, PositionPrev: 5}, nil).Once()

		rec := doGet(router, "/api/repos/octo/alpha")

		require.Equal(t, http.StatusOK, rec.Code)
		var body RepositoryInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int32(3), body.PositionCur)
		assert.Equal(t, int32(5), body.PositionPrev)
	})
}

func TestHandler_HealthCheck(t *testing.T) {
	_, router := setupRouter(t, nil)
	assert.Equal(t, http.StatusOK, doGet(router, "/health").Code)

	_, router = setupRouter(t, errors.New("pool closed"))
	assert.Equal(t, http.StatusServiceUnavailable, doGet(router, "/health").Code)
}
