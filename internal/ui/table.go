// Package ui holds render models for the admin screens: the paginated table
// and the searchable dropdown. Templates consume the models; nothing here
// writes HTML beyond escaping cell text.
package ui

import (
	"cmp"
	"fmt"
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/freightdesk/freightdesk/internal/shared"
)

// SortDir is a sort direction.
type SortDir string

// Sort directions.
const (
	SortAsc  SortDir = "ASC"
	SortDesc SortDir = "DESC"
)

// ParseSortDir accepts either case and defaults to ascending.
func ParseSortDir(raw string) SortDir {
	if strings.EqualFold(raw, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// maxPageButtons bounds the numbered buttons in the footer.
const maxPageButtons = 5

// Column describes one table column over rows of T.
type Column[T any] struct {
	Key      string
	Header   string
	Width    string
	Sortable bool
	// Value extracts the sortable value and the default cell text.
	Value func(T) any
	// Cell renders custom markup. When nil the escaped Value is shown.
	Cell func(T) template.HTML
}

// PageState is the caller-owned sort and page position.
type PageState struct {
	Page     int
	PageSize int
	SortBy   string
	SortDir  SortDir
}

// NextSort returns the sort after clicking the header for key: the active
// column flips direction, any other column starts ascending.
func NextSort(state PageState, key string) (string, SortDir) {
	if state.SortBy == key && state.SortDir != SortDesc {
		return key, SortDesc
	}
	return key, SortAsc
}

// TableOptions configures links and transient states.
type TableOptions struct {
	// SortURL builds the link for a header click. Nil disables sort links.
	SortURL func(key string, dir SortDir) string
	// PageURL builds the link for a page button. Nil hides the footer.
	PageURL func(page int) string
	// ClientSide makes the table sort and slice the rows itself.
	ClientSide bool
	// Loading shows the loading row for asynchronous callers that render
	// before their fetch completes.
	Loading      bool
	EmptyMessage string
	// LoadError replaces the body with a failure message and retry link.
	LoadError string
	RetryURL  string
}

// TableView is the render model consumed by the table partial.
type TableView struct {
	Headers      []HeaderCell
	Rows         []TableRow
	Loading      bool
	Empty        bool
	EmptyMessage string
	LoadError    string
	RetryURL     string
	Total        int
	Footer       *TableFooter
}

// Colspan is the number of columns a full-width row spans.
func (v TableView) Colspan() int {
	if len(v.Headers) == 0 {
		return 1
	}
	return len(v.Headers)
}

// HeaderCell is one column header.
type HeaderCell struct {
	Label  string
	Width  string
	Href   string
	Active bool
	Dir    SortDir
}

// TableRow is one rendered row.
type TableRow struct {
	Cells []template.HTML
}

// TableFooter carries the pagination controls.
type TableFooter struct {
	From    int
	To      int
	Total   int
	Summary string
	Prev    PageLink
	Next    PageLink
	Pages   []PageLink
}

// PageLink is one pagination control.
type PageLink struct {
	Number   int
	Href     string
	Current  bool
	Disabled bool
}

// NewTable builds the render model for one page of rows.
func NewTable[T any](page shared.Page[T], cols []Column[T], state PageState, opts TableOptions) TableView {
	meta := resolveMeta(page, state)
	v := TableView{
		Headers:      headers(cols, state, opts),
		EmptyMessage: opts.EmptyMessage,
		Total:        meta.Total,
	}
	if v.EmptyMessage == "" {
		v.EmptyMessage = "No records found"
	}

	switch {
	case opts.Loading:
		v.Loading = true
		return v
	case opts.LoadError != "":
		v.LoadError = opts.LoadError
		v.RetryURL = opts.RetryURL
		return v
	}

	items := page.Items
	if opts.ClientSide {
		items = sortRows(items, cols, state)
		items = sliceRows(items, meta)
	}
	if len(items) == 0 {
		v.Empty = true
	}
	for _, item := range items {
		row := TableRow{Cells: make([]template.HTML, len(cols))}
		for i, c := range cols {
			row.Cells[i] = renderCell(c, item)
		}
		v.Rows = append(v.Rows, row)
	}

	if meta.TotalPages > 1 && opts.PageURL != nil {
		v.Footer = footer(meta, opts.PageURL)
	}
	return v
}

// NewSliceTable builds a table from a bare slice and sorts and pages it locally.
func NewSliceTable[T any](items []T, cols []Column[T], state PageState, opts TableOptions) TableView {
	size := state.PageSize
	if size <= 0 {
		size = shared.DefaultPageSize
	}
	opts.ClientSide = true
	return NewTable(shared.NewPage(items, state.Page, size, len(items)), cols, state, opts)
}

func resolveMeta[T any](page shared.Page[T], state PageState) shared.Pagination {
	p := page.Pagination()
	if p.Page <= 0 {
		p.Page = state.Page
	}
	if p.PerPage <= 0 {
		p.PerPage = state.PageSize
	}
	if p.TotalPages <= 0 || p.PerPage <= 0 {
		p = shared.NewPagination(p.Page, p.PerPage, p.Total)
	}
	if p.Page > p.TotalPages && p.TotalPages > 0 {
		p.Page = p.TotalPages
	}
	return p
}

func headers[T any](cols []Column[T], state PageState, opts TableOptions) []HeaderCell {
	out := make([]HeaderCell, len(cols))
	for i, c := range cols {
		h := HeaderCell{Label: c.Header, Width: c.Width}
		if c.Sortable {
			h.Active = state.SortBy == c.Key
			if h.Active {
				h.Dir = state.SortDir
			}
			if opts.SortURL != nil {
				key, dir := NextSort(state, c.Key)
				h.Href = opts.SortURL(key, dir)
			}
		}
		out[i] = h
	}
	return out
}

// ShowingRange returns the 1-based positions of the first and last row on
// the current page. Both are zero when there are no rows.
func ShowingRange(meta shared.Pagination) (from, to int) {
	if meta.Total <= 0 || meta.PerPage <= 0 {
		return 0, 0
	}
	from = (meta.Page-1)*meta.PerPage + 1
	to = min(meta.Page*meta.PerPage, meta.Total)
	return from, to
}

// ShowingSummary is the "Showing X to Y of Z results" line.
func ShowingSummary(meta shared.Pagination) string {
	from, to := ShowingRange(meta)
	return fmt.Sprintf("Showing %d to %d of %d results", from, to, meta.Total)
}

func footer(meta shared.Pagination, pageURL func(int) string) *TableFooter {
	from, to := ShowingRange(meta)
	f := &TableFooter{
		From:    from,
		To:      to,
		Total:   meta.Total,
		Summary: ShowingSummary(meta),
		Prev:    PageLink{Number: meta.Page - 1, Disabled: meta.Page <= 1},
		Next:    PageLink{Number: meta.Page + 1, Disabled: meta.Page >= meta.TotalPages},
	}
	if !f.Prev.Disabled {
		f.Prev.Href = pageURL(f.Prev.Number)
	}
	if !f.Next.Disabled {
		f.Next.Href = pageURL(f.Next.Number)
	}
	start, end := pageWindow(meta.Page, meta.TotalPages)
	for n := start; n <= end; n++ {
		f.Pages = append(f.Pages, PageLink{Number: n, Href: pageURL(n), Current: n == meta.Page})
	}
	return f
}

// pageWindow returns at most maxPageButtons page numbers centred on current.
func pageWindow(current, total int) (int, int) {
	if total <= maxPageButtons {
		return 1, total
	}
	start := current - maxPageButtons/2
	start = max(start, 1)
	start = min(start, total-maxPageButtons+1)
	return start, start + maxPageButtons - 1
}

func renderCell[T any](c Column[T], item T) template.HTML {
	if c.Cell != nil {
		return c.Cell(item)
	}
	if c.Value == nil {
		return ""
	}
	return template.HTML(template.HTMLEscapeString(FormatValue(c.Value(item))))
}

// FormatValue renders a cell value as text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("02 Jan 2006")
	case *time.Time:
		if x == nil || x.IsZero() {
			return ""
		}
		return x.Format("02 Jan 2006")
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case float64:
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(x)
	}
}

func sortRows[T any](items []T, cols []Column[T], state PageState) []T {
	if state.SortBy == "" {
		return items
	}
	var col *Column[T]
	for i := range cols {
		if cols[i].Key == state.SortBy && cols[i].Sortable && cols[i].Value != nil {
			col = &cols[i]
			break
		}
	}
	if col == nil {
		return items
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := compareValues(col.Value(a), col.Value(b))
		if state.SortDir == SortDesc {
			return -c
		}
		return c
	})
	return sorted
}

func sliceRows[T any](items []T, meta shared.Pagination) []T {
	if meta.PerPage <= 0 {
		return items
	}
	start := (meta.Page - 1) * meta.PerPage
	if start >= len(items) || start < 0 {
		return nil
	}
	end := min(start+meta.PerPage, len(items))
	return items[start:end]
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(strings.ToLower(x), strings.ToLower(y))
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return cmp.Compare(FormatValue(a), FormatValue(b))
}
