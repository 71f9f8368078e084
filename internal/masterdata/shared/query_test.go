package shared

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereBuildsPositionalArgs(t *testing.T) {
	active := true
	var w Where
	w.Apply(ListFilters{Search: "air", IsActive: &active}, "is_active", "name", "code")
	w.Add("country_id = ?", int64(4))

	assert.Equal(t, " WHERE is_active = $1 AND (name ILIKE $2 OR code ILIKE $2) AND country_id = $3", w.SQL())
	assert.Equal(t, []any{true, "%air%", int64(4)}, w.Args())

	q, args := w.Paginate("SELECT 1", ListFilters{Page: 3, Limit: 10})
	assert.Equal(t, "SELECT 1 LIMIT $4 OFFSET $5", q)
	assert.Equal(t, []any{true, "%air%", int64(4), 10, 20}, args)
}

func TestWhereEmpty(t *testing.T) {
	var w Where
	w.Search("", "name")
	assert.Empty(t, w.SQL())
	assert.Empty(t, w.Args())
}

func TestOrderByWhitelist(t *testing.T) {
	cols := map[string]string{"name": "c.name", "code": "c.code"}
	assert.Equal(t, " ORDER BY c.code DESC", OrderBy("code", "desc", cols, "c.name"))
	assert.Equal(t, " ORDER BY c.name ASC", OrderBy("name; DROP TABLE", "ASC", cols, "c.name"))
}

func TestParseListFilters(t *testing.T) {
	q := url.Values{}
	q.Set("page", "2")
	q.Set("limit", "500")
	q.Set("search", " emir ")
	q.Set("sort_by", "name")
	q.Set("sort_dir", "desc")
	q.Set("is_active", "false")
	q.Set("country_id", "7")

	f := ParseListFilters(q)

	assert.Equal(t, 2, f.Page)
	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, "emir", f.Search)
	assert.Equal(t, "name", f.SortBy)
	assert.Equal(t, SortDesc, f.SortDir)
	require.NotNil(t, f.IsActive)
	assert.False(t, *f.IsActive)
	require.NotNil(t, f.CountryID)
	assert.Equal(t, int64(7), *f.CountryID)
	assert.Equal(t, 100, f.Offset())
}

func TestParseListFiltersDefaults(t *testing.T) {
	f := ParseListFilters(url.Values{"page_size": {"10"}})
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, SortAsc, f.SortDir)
	assert.Nil(t, f.CountryID)
}
