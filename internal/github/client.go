// internal/github/client.go
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"

	custom_errors "github-top-tracker/internal/errors"
	"github-top-tracker/internal/model"
)

const (
	// PageSize is the largest page GitHub serves; a shorter page is the last one.
	PageSize = 100

	topRepositoriesQuery = "stars:>1"
)

// Client is a wrapper around the go-github client.
type Client struct {
	gh            *github.Client
	logger        *slog.Logger
	expectedRepos int
}

// Option customizes a Client.
type Option func(*Client) error

// WithBaseURL points the client at a GitHub Enterprise or test server.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid GitHub base URL %q: %w", rawURL, err)
		}
		c.gh.BaseURL = u
		return nil
	}
}

// WithExpectedRepositories changes how many search results a ranking must contain.
func WithExpectedRepositories(n int) Option {
	return func(c *Client) error {
		if n < 1 || n > PageSize {
			return fmt.Errorf("expected repositories must be between 1 and %d, got %d", PageSize, n)
		}
		c.expectedRepos = n
		return nil
	}
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client.
func NewClient(token string, logger *slog.Logger, opts ...Option) (*Client, error) {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	}

	c := &Client{
		gh:            github.NewClient(hc),
		logger:        logger,
		expectedRepos: PageSize,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SearchTopRepositories fetches the most starred repositories, ranked by
// their position in the search response.
func (c *Client) SearchTopRepositories(ctx context.Context) ([]model.Repository, error) {
	const op = "search repositories"

	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: c.expectedRepos},
	}
	params, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	params.Set("q", topRepositoriesQuery)

	var result *github.RepositoriesSearchResult
	if err := c.getJSON(ctx, op, "", "", 0, "search/repositories?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	if result == nil || len(result.Repositories) != c.expectedRepos {
		got := 0
		if result != nil {
			got = len(result.Repositories)
		}
		return nil, &custom_errors.SchemaError{
			Op:     op,
			Reason: fmt.Sprintf("expected %d repositories, got %d", c.expectedRepos, got),
		}
	}

	repos := make([]model.Repository, 0, len(result.Repositories))
	for i, r := range result.Repositories {
		repo, err := toInternalRepository(r, i+1)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	c.logger.Debug("Fetched top repositories", "count", len(repos))
	return repos, nil
}

// ListCommitPage fetches one page of commits authored since the given time.
func (c *Client) ListCommitPage(ctx context.Context, owner, name string, since time.Time, page int) ([]model.Commit, error) {
	const op = "list commits"

	opts := &github.CommitsListOptions{
		Since: since,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: PageSize,
		},
	}
	params, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("repos/%s/%s/commits?%s", url.PathEscape(owner), url.PathEscape(name), params.Encode())

	var commits []*github.RepositoryCommit
	if err := c.getJSON(ctx, op, owner, name, page, path, &commits); err != nil {
		return nil, err
	}

	out := make([]model.Commit, 0, len(commits))
	for _, rc := range commits {
		commit, err := toInternalCommit(rc)
		if err != nil {
			return nil, &custom_errors.SchemaError{Op: op, Owner: owner, Repo: name, Page: page, Reason: err.Error()}
		}
		out = append(out, commit)
	}
	return out, nil
}

// GetRecentCommits fetches every commit since the given time. Pages are
// requested in order until one comes back shorter than PageSize.
func (c *Client) GetRecentCommits(ctx context.Context, owner, name string, since time.Time) ([]model.Commit, error) {
	var allCommits []model.Commit

	for page := 1; ; page++ {
		c.logger.Debug("Fetching commits page", "owner", owner, "repo", name, "page", page)

		commits, err := c.ListCommitPage(ctx, owner, name, since, page)
		if err != nil {
			return nil, err
		}
		allCommits = append(allCommits, commits...)

		if len(commits) < PageSize {
			break
		}
	}

	return allCommits, nil
}

// ResolveAuthor picks the identifier a commit is attributed to: the author
// account login, then the committer account login, then the committer name,
// then the author name. It returns nil when none of them is set.
func ResolveAuthor(rc *github.RepositoryCommit) *string {
	candidates := []string{
		rc.GetAuthor().GetLogin(),
		rc.GetCommitter().GetLogin(),
		rc.GetCommit().GetCommitter().GetName(),
		rc.GetCommit().GetAuthor().GetName(),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return &candidate
		}
	}
	return nil
}

// getJSON issues a GET and decodes the whole body into v. go-github's own
// decoding accepts an empty body and ignores anything after the first JSON
// value, so the body is read and unmarshalled here instead.
func (c *Client) getJSON(ctx context.Context, op, owner, name string, page int, path string, v any) error {
	req, err := c.gh.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.gh.BareDo(ctx, req)
	if err != nil {
		return classify(op, owner, name, page, resp, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &custom_errors.FetchError{
			Op: op, Owner: owner, Repo: name, Page: page, StatusCode: resp.StatusCode,
			Err: errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &custom_errors.FetchError{Op: op, Owner: owner, Repo: name, Page: page, StatusCode: resp.StatusCode, Err: err}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &custom_errors.ParseError{Op: op, Owner: owner, Repo: name, Page: page, Err: err}
	}
	return nil
}

// classify turns a failed go-github call into a FetchError carrying the
// upstream status, or zero when no response was received.
func classify(op, owner, name string, page int, resp *github.Response, err error) error {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	var errResp *github.ErrorResponse
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &errResp) && errResp.Response != nil:
		status = errResp.Response.StatusCode
	case errors.As(err, &rateErr) && rateErr.Response != nil:
		status = rateErr.Response.StatusCode
	case errors.As(err, &abuseErr) && abuseErr.Response != nil:
		status = abuseErr.Response.StatusCode
	}
	return &custom_errors.FetchError{Op: op, Owner: owner, Repo: name, Page: page, StatusCode: status, Err: err}
}

// toInternalRepository translates a search result item to our internal model.Repository.
func toInternalRepository(r *github.Repository, position int) (model.Repository, error) {
	missing := func(field string) error {
		return &custom_errors.SchemaError{
			Op:     "search repositories",
			Reason: fmt.Sprintf("item %d is missing %q", position, field),
		}
	}
	switch {
	case r == nil:
		return model.Repository{}, missing("item")
	case r.FullName == nil || *r.FullName == "":
		return model.Repository{}, missing("full_name")
	case r.Name == nil:
		return model.Repository{}, missing("name")
	case r.Owner == nil || r.Owner.Login == nil:
		return model.Repository{}, missing("owner.login")
	case r.StargazersCount == nil:
		return model.Repository{}, missing("stargazers_count")
	case r.WatchersCount == nil:
		return model.Repository{}, missing("watchers_count")
	case r.ForksCount == nil:
		return model.Repository{}, missing("forks_count")
	case r.OpenIssuesCount == nil:
		return model.Repository{}, missing("open_issues_count")
	}

	return model.Repository{
		FullName:        r.GetFullName(),
		Owner:           r.GetOwner().GetLogin(),
		Name:            r.GetName(),
		Position:        position,
		StarsCount:      r.GetStargazersCount(),
		WatchersCount:   r.GetWatchersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		Language:        r.GetLanguage(),
	}, nil
}

// toInternalCommit translates a github.RepositoryCommit object to our internal model.Commit.
func toInternalCommit(rc *github.RepositoryCommit) (model.Commit, error) {
	if rc == nil {
		return model.Commit{}, errors.New("null commit record")
	}
	author := rc.GetCommit().GetAuthor()
	if author == nil || author.Date == nil {
		return model.Commit{}, fmt.Errorf("commit %q is missing commit.author.date", rc.GetSHA())
	}
	return model.Commit{
		SHA:        rc.GetSHA(),
		AuthoredAt: author.GetDate().Time,
		Author:     ResolveAuthor(rc),
	}, nil
}
