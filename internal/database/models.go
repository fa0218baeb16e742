// internal/database/models.go
package database

import (
	"time"
)

type Repository struct {
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

type CommitActivity struct {
	Repo    string    `json:"repo"`
	Date    time.Time `json:"date"`
	Commits int32     `json:"commits"`
	Authors []string  `json:"authors"`
}
