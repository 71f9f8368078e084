// Package crud serves list, detail, form and delete screens plus the JSON API
// for any entity that supplies a Service and a Resource descriptor.
package crud

import (
	"context"
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	mdshared "github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

// Service is the storage facing contract a resource needs.
type Service[T any] interface {
	List(ctx context.Context, filters mdshared.ListFilters) ([]T, int, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Resource describes how an entity is presented.
type Resource[T any] struct {
	// Name is the singular key, e.g. "carrier" or "port-airport".
	Name string
	// Plural is the URL segment, e.g. "carriers".
	Plural string
	// Module is the permission key.
	Module string
	// BasePath is the HTML route prefix.
	BasePath string

	Columns []ui.Column[T]
	ID      func(T) int64
	Label   func(T) string
	Detail  func(T) []DetailRow
	// Form builds the form for item; zero T for a new record.
	Form func(ctx context.Context, item T) Form
	// Decode builds an item from submitted form values.
	Decode func(values url.Values) (T, error)
	// Filters lets a resource read extra list parameters.
	Filters func(q url.Values, f *mdshared.ListFilters)
	// Sections adds blocks below the detail rows, such as line items or a
	// status form.
	Sections func(item T, gate *rbac.Gate) []Section
}

// Section is an extra block on the detail page. Either Table or Form is set.
type Section struct {
	Title string
	Table *ui.TableView
	Form  *InlineForm
}

// InlineForm is a small POST form rendered inside a Section.
type InlineForm struct {
	Action string
	Submit string
	Fields []Field
}

// Title returns the singular display name, e.g. "Port Airport".
func (r Resource[T]) Title() string {
	return titleCase(r.Name)
}

// PluralTitle returns the plural display name, e.g. "Ports Airports".
func (r Resource[T]) PluralTitle() string {
	return titleCase(r.Plural)
}

func (r Resource[T]) option(item T) ui.Option {
	return ui.Option{ID: itoa(r.ID(item)), Name: r.Label(item)}
}

// DetailRow is one label/value pair on the detail page.
type DetailRow struct {
	Label string
	Value template.HTML
}

// Text builds a DetailRow from plain text.
func Text(label string, value any) DetailRow {
	return DetailRow{Label: label, Value: template.HTML(template.HTMLEscapeString(ui.FormatValue(value)))}
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

func lowerTitle(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", " "))
}

// Badge renders a status pill.
func Badge(status string) template.HTML {
	s := template.HTMLEscapeString(status)
	return template.HTML(`<span class="badge badge-` + s + `">` + s + `</span>`)
}
