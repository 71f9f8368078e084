package countries

import (
	"context"
	"net/url"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

// Resource describes how countries are listed and edited.
func Resource() crud.Resource[Country] {
	return crud.Resource[Country]{
		Name:     "country",
		Plural:   "countries",
		Module:   rbac.ModuleCountries,
		BasePath: "/dashboard/countries",
		Columns: []ui.Column[Country]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(c Country) any { return c.Name }},
			{Key: "code", Header: "Code", Sortable: true, Width: "6rem", Value: func(c Country) any { return c.Code }},
			{Key: "capital", Header: "Capital", Sortable: true, Value: func(c Country) any { return c.Capital }},
			{Key: "currency", Header: "Currency", Sortable: true, Value: func(c Country) any { return c.Currency }},
			{Key: "is_active", Header: "Active", Value: func(c Country) any { return c.IsActive }},
		},
		ID:    func(c Country) int64 { return c.ID },
		Label: func(c Country) string { return c.Name },
		Detail: func(c Country) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Name", c.Name),
				crud.Text("Code", c.Code),
				crud.Text("Capital", c.Capital),
				crud.Text("Currency", c.Currency),
				crud.Text("Language", c.Language),
				crud.Text("Active", c.IsActive),
				crud.Text("Created", c.CreatedAt),
			}
		},
		Form: func(_ context.Context, c Country) crud.Form {
			if c.ID == 0 && c.Name == "" {
				c.IsActive = true
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "name", Label: "Name", Type: crud.FieldText, Value: c.Name, Required: true},
				{Name: "code", Label: "Code", Type: crud.FieldText, Value: c.Code, Required: true, Placeholder: "e.g. KEN"},
				{Name: "capital", Label: "Capital", Type: crud.FieldText, Value: c.Capital},
				{Name: "currency", Label: "Currency", Type: crud.FieldText, Value: c.Currency},
				{Name: "language", Label: "Language", Type: crud.FieldText, Value: c.Language},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: c.IsActive},
			}}
		},
		Decode: func(v url.Values) (Country, error) {
			return Country{
				Name:     crud.FormString(v, "name"),
				Code:     crud.FormString(v, "code"),
				Capital:  crud.FormString(v, "capital"),
				Currency: crud.FormString(v, "currency"),
				Language: crud.FormString(v, "language"),
				IsActive: crud.FormBool(v, "is_active"),
			}, nil
		},
	}
}
