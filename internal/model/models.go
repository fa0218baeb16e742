// internal/model/models.go
package model

import "time"

// Repository is one ranked repository snapshot taken during an ingestion run.
type Repository struct {
	FullName        string // owner/name
	Owner           string
	Name            string
	Position        int
	StarsCount      int
	WatchersCount   int
	ForksCount      int
	OpenIssuesCount int
	Language        string
	Activity        []DailyActivity
}

// Commit is the part of an upstream commit record the aggregator needs.
type Commit struct {
	SHA string
	// AuthoredAt keeps the offset GitHub reported; it is not normalized to UTC.
	AuthoredAt time.Time
	// Author is nil when no identifier could be resolved.
	Author *string
}

// DailyActivity summarizes the commits of one repository on one calendar day.
type DailyActivity struct {
	Repo    string
	Date    time.Time
	Commits int
	Authors []string
}

// FullName joins owner and name the way GitHub does.
func FullName(owner, name string) string {
	return owner + "/" + name
}
