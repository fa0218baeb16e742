// internal/activity/aggregate.go
package activity

import (
	"sort"
	"time"

	"github-top-tracker/internal/model"
)

// Day is the per-date fold of a commit list.
type Day struct {
	Commits int
	Authors map[string]struct{}
}

// Summary maps a calendar date (midnight UTC) to the activity on that day.
type Summary map[time.Time]*Day

// Aggregate folds commits into per-day counts and distinct author sets.
//
// The day is taken from the author timestamp in the offset GitHub reported it
// with, so commits near midnight land on the committer's local date rather
// than the UTC one. Commits without a resolved author are counted but do not
// add to the author set. Duplicate records are counted as given.
func Aggregate(commits []model.Commit) Summary {
	summary := make(Summary)
	for _, c := range commits {
		date := CalendarDate(c.AuthoredAt)
		day, ok := summary[date]
		if !ok {
			day = &Day{Authors: make(map[string]struct{})}
			summary[date] = day
		}
		day.Commits++
		if c.Author != nil {
			day.Authors[*c.Author] = struct{}{}
		}
	}
	return summary
}

// Rows flattens the summary into storable rows ordered by date, with authors sorted.
func (s Summary) Rows(repo string) []model.DailyActivity {
	rows := make([]model.DailyActivity, 0, len(s))
	for date, day := range s {
		authors := make([]string, 0, len(day.Authors))
		for a := range day.Authors {
			authors = append(authors, a)
		}
		sort.Strings(authors)
		rows = append(rows, model.DailyActivity{
			Repo:    repo,
			Date:    date,
			Commits: day.Commits,
			Authors: authors,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

// CalendarDate truncates t to its date in t's own location, returned as midnight UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
