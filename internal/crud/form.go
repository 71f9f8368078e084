package crud

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Field types understood by the form partial.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldNumber   = "number"
	FieldDate     = "date"
	FieldTextarea = "textarea"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
	FieldPassword = "password"
	// FieldSearch is a searchable dropdown backed by a remote options endpoint.
	FieldSearch = "search"
)

// Choice is one entry of a static select.
type Choice struct {
	Value string
	Label string
}

// Field is one form input.
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Step        string
	Choices     []Choice
	// OptionsURL and Display serve FieldSearch: the endpoint queried while
	// typing and the label of the current value.
	OptionsURL string
	Display    string
	Checked    bool
}

// Lines is a repeating group of inputs, posted as name[i].field.
type Lines struct {
	Name    string
	Label   string
	Columns []Field
	Rows    [][]Field
}

// Form is the render model for the create and edit pages.
type Form struct {
	Fields []Field
	Lines  *Lines
}

// Choices turns plain values into select choices labelled with title case.
func Choices(values ...string) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Value: v, Label: titleCase(strings.ReplaceAll(v, "_", " "))}
	}
	return out
}

// FormInt64 reads an integer form value, zero when absent or malformed.
func FormInt64(values url.Values, key string) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(values.Get(key)), 10, 64)
	return v
}

// FormOptionalInt64 reads an optional id.
func FormOptionalInt64(values url.Values, key string) *int64 {
	v := FormInt64(values, key)
	if v <= 0 {
		return nil
	}
	return &v
}

// FormFloat reads a decimal form value.
func FormFloat(values url.Values, key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(values.Get(key)), 64)
	return v
}

// FormBool reads a checkbox.
func FormBool(values url.Values, key string) bool {
	switch strings.ToLower(values.Get(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// FormDate reads a yyyy-mm-dd value.
func FormDate(values url.Values, key string) *time.Time {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// FormString reads a trimmed text value.
func FormString(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// DateValue formats a date for a date input.
func DateValue(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// IDValue formats an id for an input, empty for zero.
func IDValue(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// OptionalIDValue formats an optional id.
func OptionalIDValue(id *int64) string {
	if id == nil {
		return ""
	}
	return IDValue(*id)
}

// FloatValue formats a decimal for an input.
func FloatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LineValues groups posted name[i].field keys by row index in ascending order.
func LineValues(values url.Values, name string) []url.Values {
	prefix := name + "["
	rows := map[int]url.Values{}
	maxIdx := -1
	for key, vals := range values {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		idxStr, field, ok := strings.Cut(rest, "].")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 {
			continue
		}
		if rows[idx] == nil {
			rows[idx] = url.Values{}
		}
		rows[idx][field] = vals
		maxIdx = max(maxIdx, idx)
	}
	out := make([]url.Values, 0, len(rows))
	for i := 0; i <= maxIdx; i++ {
		if row, ok := rows[i]; ok {
			out = append(out, row)
		}
	}
	return out
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
