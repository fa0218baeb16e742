// internal/api/handler.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github-top-tracker/internal/database"
	custom_errors "github-top-tracker/internal/errors"
	"github-top-tracker/internal/model"
)

const (
	dateLayout = "2006-01-02"

	defaultSortingField = "stars"
	defaultSortingOrder = "desc"
)

// Service is the read side the handlers serve from.
type Service interface {
	ListTop(ctx context.Context, sortField, sortOrder string) ([]database.Repository, error)
	GetActivity(ctx context.Context, fullName string, since, until time.Time) ([]database.CommitActivity, error)
	GetRepository(ctx context.Context, fullName string) (database.Repository, error)
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the container for API dependencies.
type Handler struct {
	svc    Service
	db     Pinger
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(svc Service, db Pinger, logger *slog.Logger) http.Handler {
	h := &Handler{
		svc:    svc,
		db:     db,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/repos/top100", h.listTop)
		r.Get("/repos/{owner}/{repo}", h.getRepository)
		r.Get("/repos/{owner}/{repo}/activity", h.getActivity)
	})

	return r
}

// RepositoryInfo is one entry of the ranked listing.
type RepositoryInfo struct {
	Repo         string `json:"repo"`
	Owner        string `json:"owner"`
	PositionCur  int32  `json:"position_cur"`
	PositionPrev int32  `json:"position_prev"`
	Stars        int32  `json:"stars"`
	Watchers     int32  `json:"watchers"`
	Forks        int32  `json:"forks"`
	OpenIssues   int32  `json:"open_issues"`
	Language     string `json:"language"`
}

// CommitActivityInfo is one day of a repository's activity series.
type CommitActivityInfo struct {
	Date    string   `json:"date"`
	Commits int32    `json:"commits"`
	Authors []string `json:"authors"`
}

// healthCheck reports whether the database pool can serve a connection.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Warn("Health check failed", "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listTop handles the request for the ranked repositories.
// GET /api/repos/top100?sorting_field=stars&sorting_order=desc
func (h *Handler) listTop(w http.ResponseWriter, r *http.Request) {
	field := queryOrDefault(r, "sorting_field", defaultSortingField)
	order := queryOrDefault(r, "sorting_order", defaultSortingOrder)

	repos, err := h.svc.ListTop(r.Context(), field, order)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	out := make([]RepositoryInfo, len(repos))
	for i, repo := range repos {
		out[i] = toRepositoryInfo(repo)
	}
	respondWithJSON(w, http.StatusOK, out)
}

// getRepository handles the request for a single tracked repository.
// GET /api/repos/{owner}/{repo}
func (h *Handler) getRepository(w http.ResponseWriter, r *http.Request) {
	fullName := model.FullName(chi.URLParam(r, "owner"), chi.URLParam(r, "repo"))

	repo, err := h.svc.GetRepository(r.Context(), fullName)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toRepositoryInfo(repo))
}

// getActivity handles the request for a repository's daily commit activity.
// GET /api/repos/{owner}/{repo}/activity?since=2024-01-01&until=2024-01-07
func (h *Handler) getActivity(w http.ResponseWriter, r *http.Request) {
	fullName := model.FullName(chi.URLParam(r, "owner"), chi.URLParam(r, "repo"))

	since, err := parseDateParam(r, "since")
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	until, err := parseDateParam(r, "until")
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	activities, err := h.svc.GetActivity(r.Context(), fullName, since, until)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	out := make([]CommitActivityInfo, len(activities))
	for i, a := range activities {
		authors := a.Authors
		if authors == nil {
			authors = []string{}
		}
		out[i] = CommitActivityInfo{
			Date:    a.Date.Format(dateLayout),
			Commits: a.Commits,
			Authors: authors,
		}
	}
	respondWithJSON(w, http.StatusOK, out)
}

// respondWithServiceError maps the error taxonomy onto HTTP statuses.
func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error) {
	var validationErr *custom_errors.ValidationError
	var connErr *custom_errors.ConnectionError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, custom_errors.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Repository not found")
	case errors.As(err, &connErr):
		h.logger.Error("Database unavailable", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Database unavailable")
	default:
		h.logger.Error("Request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func queryOrDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

func parseDateParam(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, &custom_errors.ValidationError{Field: key, Reason: "is required"}
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, &custom_errors.ValidationError{Field: key, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return t, nil
}

func toRepositoryInfo(r database.Repository) RepositoryInfo {
	return RepositoryInfo{
		Repo:         r.Repo,
		Owner:        r.Owner,
		PositionCur:  r.PositionCur,
		PositionPrev: r.PositionPrev,
		Stars:        r.Stars,
		Watchers:     r.Watchers,
		Forks:        r.Forks,
		OpenIssues:   r.OpenIssues,
		Language:     r.Language,
	}
}
