// internal/database/sort_test.go
package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortField(t *testing.T) {
	for _, s := range []string{"repo", "owner", "position_cur", "position_prev", "stars", "watchers", "forks", "open_issues", "language"} {
		f, ok := ParseSortField(s)
		assert.True(t, ok, s)
		column, ok := f.column()
		assert.True(t, ok, s)
		assert.Equal(t, s, column)
	}

	for _, s := range []string{"", "Stars", "positionCur", "stars; DROP TABLE \"Repositories\"", "1"} {
		_, ok := ParseSortField(s)
		assert.False(t, ok, s)
	}
}

func TestParseSortOrder(t *testing.T) {
	o, ok := ParseSortOrder("asc")
	assert.True(t, ok)
	assert.Equal(t, SortAsc, o)

	o, ok = ParseSortOrder("desc")
	assert.True(t, ok)
	assert.Equal(t, SortDesc, o)

	for _, s := range []string{"", "ASC", "descending", "desc, repo"} {
		_, ok := ParseSortOrder(s)
		assert.False(t, ok, s)
	}
}
