package shared

import (
	"net/url"
	"strconv"
	"strings"
)

// ListFilters represents standard list page filters
type ListFilters struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string
	SortDir  string
	IsActive *bool

	// Entity specific filters
	CountryID *int64
	CityID    *int64
	JobID     *int64
	Type      string
	Status    string
}

// Offset returns the row offset of the requested page.
func (f ListFilters) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// ParseListFilters reads the common list parameters. Both limit and
// page_size are accepted for the page size.
func ParseListFilters(q url.Values) ListFilters {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = DefaultPage
	}
	limit, _ := strconv.Atoi(q.Get("page_size"))
	if limit < 1 {
		limit, _ = strconv.Atoi(q.Get("limit"))
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	f := ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  strings.TrimSpace(firstNonEmpty(q.Get("search"), q.Get("q"))),
		SortBy:  firstNonEmpty(q.Get("sort_by"), q.Get("sort")),
		SortDir: strings.ToUpper(firstNonEmpty(q.Get("sort_dir"), q.Get("dir"))),
		Type:    q.Get("type"),
		Status:  q.Get("status"),
	}
	if f.SortDir != SortDesc {
		f.SortDir = SortAsc
	}
	if raw := q.Get("is_active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &v
		}
	}
	f.CountryID = parseID(q.Get("country_id"))
	f.CityID = parseID(q.Get("city_id"))
	f.JobID = parseID(q.Get("job_id"))
	return f
}

func parseID(raw string) *int64 {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
