// internal/database/sort.go
package database

// SortField is a column the top-repositories listing may be ordered by.
type SortField string

const (
	SortByRepo         SortField = "repo"
	SortByOwner        SortField = "owner"
	SortByPositionCur  SortField = "position_cur"
	SortByPositionPrev SortField = "position_prev"
	SortByStars        SortField = "stars"
	SortByWatchers     SortField = "watchers"
	SortByForks        SortField = "forks"
	SortByOpenIssues   SortField = "open_issues"
	SortByLanguage     SortField = "language"
)

var sortColumns = map[SortField]string{
	SortByRepo:         "repo",
	SortByOwner:        "owner",
	SortByPositionCur:  "position_cur",
	SortByPositionPrev: "position_prev",
	SortByStars:        "stars",
	SortByWatchers:     "watchers",
	SortByForks:        "forks",
	SortByOpenIssues:   "open_issues",
	SortByLanguage:     "language",
}

// ParseSortField accepts only the enumerated field names.
func ParseSortField(s string) (SortField, bool) {
	f := SortField(s)
	_, ok := sortColumns[f]
	return f, ok
}

func (f SortField) column() (string, bool) {
	c, ok := sortColumns[f]
	return c, ok
}

// SortOrder is the direction of the top-repositories listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts only "asc" and "desc".
func ParseSortOrder(s string) (SortOrder, bool) {
	o := SortOrder(s)
	_, ok := o.keyword()
	return o, ok
}

func (o SortOrder) keyword() (string, bool) {
	switch o {
	case SortAsc:
		return "ASC", true
	case SortDesc:
		return "DESC", true
	}
	return "", false
}
