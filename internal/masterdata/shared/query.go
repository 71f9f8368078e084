package shared

import (
	"strconv"
	"strings"
)

// Where accumulates filter conditions and their positional arguments so the
// count and list queries of a dynamic listing stay in step.
type Where struct {
	conds []string
	args  []any
}

// Add appends a condition. Each "?" in cond is replaced by the next
// positional parameter bound to the same value.
func (w *Where) Add(cond string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(w.args))))
}

// Search adds an ILIKE match of term across columns.
func (w *Where) Search(term string, columns ...string) {
	if term == "" || len(columns) == 0 {
		return
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE ?"
	}
	w.Add("("+strings.Join(parts, " OR ")+")", "%"+term+"%")
}

// Apply adds the filters every master-data table shares.
func (w *Where) Apply(f ListFilters, activeColumn string, searchColumns ...string) {
	if f.IsActive != nil && activeColumn != "" {
		w.Add(activeColumn+" = ?", *f.IsActive)
	}
	w.Search(f.Search, searchColumns...)
}

// SQL renders the WHERE clause, empty when there are no conditions.
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// Args returns the bound arguments.
func (w *Where) Args() []any {
	return append([]any(nil), w.args...)
}

// Paginate appends LIMIT and OFFSET for f and returns the arguments to use.
func (w *Where) Paginate(query string, f ListFilters) (string, []any) {
	args := w.Args()
	if f.Limit <= 0 {
		return query, args
	}
	args = append(args, f.Limit, f.Offset())
	return query + " LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args)), args
}

// OrderBy maps a requested sort key onto a whitelisted column expression.
func OrderBy(sortBy, sortDir string, columns map[string]string, fallback string) string {
	dir := SortAsc
	if strings.EqualFold(sortDir, SortDesc) {
		dir = SortDesc
	}
	col, ok := columns[sortBy]
	if !ok {
		col = fallback
	}
	return " ORDER BY " + col + " " + dir
}
